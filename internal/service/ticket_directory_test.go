package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SAFE-MLC/safe-gate-ms/internal/model"
	"github.com/SAFE-MLC/safe-gate-ms/internal/repository"
)

type fakeStore struct {
	tickets map[string]*model.Ticket
	err     error
	fetches int
}

func (s *fakeStore) FetchWithEntitlements(_ context.Context, ticketID string) (*model.Ticket, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tickets[ticketID]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return t, nil
}

type fakeViews struct {
	views  map[string]model.TicketView
	getErr error
	setErr error
	sets   int
}

func (v *fakeViews) Get(_ context.Context, ticketID string) (*model.TicketView, error) {
	if v.getErr != nil {
		return nil, v.getErr
	}
	view, ok := v.views[ticketID]
	if !ok {
		return nil, nil
	}
	return &view, nil
}

func (v *fakeViews) Set(_ context.Context, view model.TicketView) error {
	v.sets++
	if v.setErr != nil {
		return v.setErr
	}
	if v.views == nil {
		v.views = map[string]model.TicketView{}
	}
	v.views[view.TicketID] = view
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTicketDirectory_Lookup(t *testing.T) {
	t.Parallel()

	active := &model.Ticket{ID: "T1", EventID: "event-1", Status: model.StatusActive, Entitlements: []string{"VIP"}}

	t.Run("cache hit avoids durable read", func(t *testing.T) {
		store := &fakeStore{tickets: map[string]*model.Ticket{"T1": active}}
		views := &fakeViews{views: map[string]model.TicketView{"T1": model.ViewOf(active)}}
		dir := NewTicketDirectory(store, views, discardLogger())

		view, err := dir.Lookup(context.Background(), "T1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.Status != model.StatusActive {
			t.Fatalf("expected ACTIVE view, got %s", view.Status)
		}
		if store.fetches != 0 {
			t.Fatalf("expected no durable reads on cache hit, got %d", store.fetches)
		}
	})

	t.Run("cache miss reads store and populates cache", func(t *testing.T) {
		store := &fakeStore{tickets: map[string]*model.Ticket{"T1": active}}
		views := &fakeViews{}
		dir := NewTicketDirectory(store, views, discardLogger())

		view, err := dir.Lookup(context.Background(), "T1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.TicketID != "T1" || view.EventID != "event-1" {
			t.Fatalf("unexpected view %+v", view)
		}
		if store.fetches != 1 {
			t.Fatalf("expected one durable read, got %d", store.fetches)
		}
		if _, ok := views.views["T1"]; !ok {
			t.Fatalf("expected view to be cached after miss")
		}
	})

	t.Run("durable miss is not cached", func(t *testing.T) {
		store := &fakeStore{tickets: map[string]*model.Ticket{}}
		views := &fakeViews{}
		dir := NewTicketDirectory(store, views, discardLogger())

		_, err := dir.Lookup(context.Background(), "nope")
		if !errors.Is(err, repository.ErrTicketNotFound) {
			t.Fatalf("expected ErrTicketNotFound, got %v", err)
		}
		if views.sets != 0 {
			t.Fatalf("expected no cache writes on durable miss, got %d", views.sets)
		}
	})

	t.Run("cache read failure falls back to durable store", func(t *testing.T) {
		store := &fakeStore{tickets: map[string]*model.Ticket{"T1": active}}
		views := &fakeViews{getErr: errors.New("redis down")}
		dir := NewTicketDirectory(store, views, discardLogger())

		view, err := dir.Lookup(context.Background(), "T1")
		if err != nil {
			t.Fatalf("expected fallback to succeed, got %v", err)
		}
		if view.TicketID != "T1" {
			t.Fatalf("unexpected view %+v", view)
		}
		if store.fetches != 1 {
			t.Fatalf("expected one durable read, got %d", store.fetches)
		}
	})

	t.Run("cache write failure does not fail lookup", func(t *testing.T) {
		store := &fakeStore{tickets: map[string]*model.Ticket{"T1": active}}
		views := &fakeViews{setErr: errors.New("redis down")}
		dir := NewTicketDirectory(store, views, discardLogger())

		if _, err := dir.Lookup(context.Background(), "T1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("durable failure propagates", func(t *testing.T) {
		store := &fakeStore{err: errors.New("mysql down")}
		views := &fakeViews{}
		dir := NewTicketDirectory(store, views, discardLogger())

		if _, err := dir.Lookup(context.Background(), "T1"); err == nil {
			t.Fatalf("expected error when durable store fails")
		}
	})
}

func TestTicketDirectory_Refresh(t *testing.T) {
	t.Parallel()

	store := &fakeStore{tickets: map[string]*model.Ticket{}}
	views := &fakeViews{}
	dir := NewTicketDirectory(store, views, discardLogger())

	used := model.TicketView{TicketID: "T1", Status: model.StatusUsed, EventID: "event-1", Entitlements: []string{"VIP"}}
	if err := dir.Refresh(context.Background(), used); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, ok := views.views["T1"]
	if !ok || got.Status != model.StatusUsed {
		t.Fatalf("expected USED view cached, got %+v (present=%v)", got, ok)
	}
}
