package service

import (
	"context"
	"log/slog"

	"github.com/SAFE-MLC/safe-gate-ms/internal/model"
)

// TicketStore is the durable source of truth for ticket state.
type TicketStore interface {
	FetchWithEntitlements(ctx context.Context, ticketID string) (*model.Ticket, error)
}

// ViewStore is the shared, best-effort accelerator for ticket views.
type ViewStore interface {
	Get(ctx context.Context, ticketID string) (*model.TicketView, error)
	Set(ctx context.Context, view model.TicketView) error
}

// TicketDirectory resolves a ticket's current status and entitlements
// cache-aside: the view cache is consulted first, the durable store on a
// miss, and the fetched view is written back for subsequent reads. A cache
// hit only saves a durable read; it is never the authority for whether a
// ticket may be consumed — that check lives in the durable consume itself.
type TicketDirectory struct {
	store TicketStore
	views ViewStore
	log   *slog.Logger
}

// NewTicketDirectory returns a directory over the given durable store and
// view cache. All dependencies must be non-nil.
func NewTicketDirectory(store TicketStore, views ViewStore, log *slog.Logger) *TicketDirectory {
	if store == nil || views == nil {
		panic("nil dependency passed to NewTicketDirectory")
	}
	return &TicketDirectory{store: store, views: views, log: log}
}

// Lookup returns the current view of a ticket. Cache failures on the read
// path are downgraded to misses and cache write failures are logged and
// ignored: the cache is an accelerator, and losing it must degrade to
// durable reads, not to request failures. A durable miss returns
// repository.ErrTicketNotFound unwrapped; a durable miss is deliberately
// not cached, so a ticket issued right after a miss becomes scannable
// without waiting out a negative-cache TTL.
func (d *TicketDirectory) Lookup(ctx context.Context, ticketID string) (model.TicketView, error) {
	cached, err := d.views.Get(ctx, ticketID)
	if err != nil {
		d.log.Warn("ticket view cache read failed", "ticket_id", ticketID, "err", err)
	} else if cached != nil {
		return *cached, nil
	}

	ticket, err := d.store.FetchWithEntitlements(ctx, ticketID)
	if err != nil {
		return model.TicketView{}, err
	}
	view := model.ViewOf(ticket)
	if err := d.views.Set(ctx, view); err != nil {
		d.log.Warn("ticket view cache write failed", "ticket_id", ticketID, "err", err)
	}
	return view, nil
}

// Refresh overwrites the cached view after a successful consumption so
// subsequent reads see USED without another durable round trip.
func (d *TicketDirectory) Refresh(ctx context.Context, view model.TicketView) error {
	return d.views.Set(ctx, view)
}
