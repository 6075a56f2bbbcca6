package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SAFE-MLC/safe-gate-ms/internal/credential"
	"github.com/SAFE-MLC/safe-gate-ms/internal/metrics"
	"github.com/SAFE-MLC/safe-gate-ms/internal/model"
	"github.com/SAFE-MLC/safe-gate-ms/internal/queue"
	"github.com/SAFE-MLC/safe-gate-ms/internal/repository"
)

// Verifier validates a scan credential and extracts its claims.
type Verifier interface {
	Verify(token string) (credential.Claims, error)
}

// Directory resolves ticket views and refreshes them after consumption.
type Directory interface {
	Lookup(ctx context.Context, ticketID string) (model.TicketView, error)
	Refresh(ctx context.Context, view model.TicketView) error
}

// Admitter is the advisory exactly-once admission filter.
type Admitter interface {
	Admit(ctx context.Context, ticketID string) (bool, error)
}

// Consumer is the durable, authoritative ACTIVE -> USED transition.
type Consumer interface {
	Consume(ctx context.Context, ticketID, gateID string) (bool, error)
}

// Auditor appends consumption records to the per-event scan log.
type Auditor interface {
	Append(ctx context.Context, eventID string, entry model.GateLogEntry) error
}

// ScanPublisher fans successful scans out to the message broker.
type ScanPublisher interface {
	PublishTicketScanned(ctx context.Context, event queue.TicketScannedEvent) error
}

// GateService orchestrates one scan attempt through a fixed sequence:
// verify -> lookup -> status checks -> replay admission -> durable consume
// -> cache refresh -> audit. Steps are strictly sequential because each
// depends on the previous outcome, and the pipeline short-circuits on the
// first denial. The service holds no authoritative mutable state; all
// mutual exclusion is delegated to the replay guard and the durable
// consume, so any number of scans may run concurrently in-process.
type GateService struct {
	verifier  Verifier
	directory Directory
	replay    Admitter
	consumer  Consumer
	audit     Auditor
	publisher ScanPublisher // may be nil when broker fan-out is disabled
	eventID   string
	timeout   time.Duration
	log       *slog.Logger
}

// NewGateService constructs the decision engine. The publisher may be nil;
// every other dependency must be non-nil. eventID is the event this gate
// deployment serves and timeout bounds each external call.
func NewGateService(verifier Verifier, directory Directory, replay Admitter, consumer Consumer, audit Auditor, publisher ScanPublisher, eventID string, timeout time.Duration, log *slog.Logger) *GateService {
	if verifier == nil || directory == nil || replay == nil || consumer == nil || audit == nil {
		panic("nil dependency passed to NewGateService")
	}
	return &GateService{
		verifier:  verifier,
		directory: directory,
		replay:    replay,
		consumer:  consumer,
		audit:     audit,
		publisher: publisher,
		eventID:   eventID,
		timeout:   timeout,
		log:       log,
	}
}

// ValidateScan runs one scan attempt. It returns a Decision for every
// business outcome (allow or deny) and an error only when a dependency
// failed and no decision can be safely determined. Across concurrent
// attempts for the same ticket, at most one call returns an allowing
// decision; the rest are denied at the replay guard or the durable
// consume. Which gate wins a truly simultaneous race is unspecified.
func (s *GateService) ValidateScan(ctx context.Context, qr, gateID string) (Decision, error) {
	started := time.Now()
	scanID := uuid.NewString()

	s.log.Info("scan_attempt", "scan_id", scanID, "gate_id", gateID, "event_id", s.eventID)

	claims, err := s.verifier.Verify(qr)
	if err != nil {
		if errors.Is(err, credential.ErrClaimMismatch) {
			return s.denied(scanID, gateID, claims.TicketID, ReasonInvalid, started), nil
		}
		return s.denied(scanID, gateID, "", ReasonExpiredOrInvalid, started), nil
	}
	ticketID := claims.TicketID

	view, err := s.lookup(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return s.denied(scanID, gateID, ticketID, ReasonNotFound, started), nil
		}
		return Decision{}, s.failed(scanID, gateID, ticketID, "lookup", started, err)
	}
	if view.EventID != s.eventID {
		return s.denied(scanID, gateID, ticketID, ReasonInvalid, started), nil
	}
	if view.Status != model.StatusActive {
		// USED or REVOKED; the status string is the deny reason.
		return s.denied(scanID, gateID, ticketID, view.Status, started), nil
	}

	first, err := s.admit(ctx, ticketID)
	if err != nil {
		return Decision{}, s.failed(scanID, gateID, ticketID, "replay_admit", started, err)
	}
	if !first {
		return s.denied(scanID, gateID, ticketID, ReasonUsed, started), nil
	}

	consumed, err := s.consume(ctx, ticketID, gateID)
	if err != nil {
		return Decision{}, s.failed(scanID, gateID, ticketID, "consume", started, err)
	}
	if !consumed {
		return s.denied(scanID, gateID, ticketID, ReasonUsed, started), nil
	}

	// The ticket is consumed; everything after this point is best-effort
	// and must not turn the decision into a failure.
	view.Status = model.StatusUsed
	s.refresh(ctx, scanID, view)
	s.appendAudit(ctx, scanID, gateID, ticketID)
	s.publish(ctx, scanID, gateID, view)

	elapsed := time.Since(started)
	s.log.Info("scan_decision",
		"scan_id", scanID,
		"decision", "ALLOW",
		"gate_id", gateID,
		"ticket_id", ticketID,
		"entitlements_count", len(view.Entitlements),
		"elapsed_ms", elapsed.Milliseconds(),
	)
	metrics.ScanDecisions.WithLabelValues("ALLOW", "").Inc()
	metrics.ScanDuration.Observe(elapsed.Seconds())
	return allow(ticketID, view.Entitlements), nil
}

// lookup, admit and consume wrap each external call with the dependency
// timeout so an unreachable store fails the request instead of hanging it.

func (s *GateService) lookup(ctx context.Context, ticketID string) (model.TicketView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.directory.Lookup(ctx, ticketID)
}

func (s *GateService) admit(ctx context.Context, ticketID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.replay.Admit(ctx, ticketID)
}

func (s *GateService) consume(ctx context.Context, ticketID, gateID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.consumer.Consume(ctx, ticketID, gateID)
}

func (s *GateService) refresh(ctx context.Context, scanID string, view model.TicketView) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.directory.Refresh(ctx, view); err != nil {
		s.log.Warn("cache refresh failed", "scan_id", scanID, "ticket_id", view.TicketID, "err", err)
	}
}

func (s *GateService) appendAudit(ctx context.Context, scanID, gateID, ticketID string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	entry := model.GateLogEntry{
		TicketID: ticketID,
		GateID:   gateID,
		Ts:       time.Now().UTC().UnixMilli(),
	}
	if err := s.audit.Append(ctx, s.eventID, entry); err != nil {
		s.log.Warn("audit append failed", "scan_id", scanID, "ticket_id", ticketID, "err", err)
	}
}

func (s *GateService) publish(ctx context.Context, scanID, gateID string, view model.TicketView) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	event := queue.TicketScannedEvent{
		ScanID:       scanID,
		TicketID:     view.TicketID,
		EventID:      view.EventID,
		GateID:       gateID,
		Entitlements: view.Entitlements,
		ScannedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishTicketScanned(ctx, event); err != nil {
		s.log.Warn("scan event publish failed", "scan_id", scanID, "ticket_id", view.TicketID, "err", err)
	}
}

// denied records a deny decision in the log and metrics and returns it.
func (s *GateService) denied(scanID, gateID, ticketID, reason string, started time.Time) Decision {
	elapsed := time.Since(started)
	s.log.Info("scan_decision",
		"scan_id", scanID,
		"decision", "DENY",
		"reason", reason,
		"gate_id", gateID,
		"ticket_id", ticketID,
		"elapsed_ms", elapsed.Milliseconds(),
	)
	metrics.ScanDecisions.WithLabelValues("DENY", reason).Inc()
	metrics.ScanDuration.Observe(elapsed.Seconds())
	return deny(reason)
}

// failed records a dependency failure and returns the error unchanged.
func (s *GateService) failed(scanID, gateID, ticketID, step string, started time.Time, err error) error {
	elapsed := time.Since(started)
	s.log.Error("scan_error",
		"scan_id", scanID,
		"step", step,
		"gate_id", gateID,
		"ticket_id", ticketID,
		"err", err,
		"elapsed_ms", elapsed.Milliseconds(),
	)
	metrics.ScanDecisions.WithLabelValues("ERROR", step).Inc()
	metrics.ScanDuration.Observe(elapsed.Seconds())
	return err
}
