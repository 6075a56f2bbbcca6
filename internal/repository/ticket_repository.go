package repository

import (
	"context"
	"database/sql"

	"github.com/SAFE-MLC/safe-gate-ms/internal/model"
)

// TicketRepo provides read access to tickets and the single mutating
// operation this service performs: the atomic ACTIVE -> USED transition.
// All timestamps are written in UTC.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the provided database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FetchWithEntitlements loads a ticket together with its zone entitlement
// set in a single query. Entitlements are an order-irrelevant set; the
// ORDER BY only makes output deterministic for display and tests. When no
// ticket row exists it returns ErrTicketNotFound.
func (r *TicketRepo) FetchWithEntitlements(ctx context.Context, ticketID string) (*model.Ticket, error) {
	const q = `SELECT t.id, t.event_id, t.status, ze.zone_id
	           FROM tickets t
	           LEFT JOIN zone_entitlements ze ON ze.ticket_id = t.id
	           WHERE t.id = ?
	           ORDER BY ze.zone_id`
	rows, err := r.db.QueryContext(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var t model.Ticket
	found := false
	for rows.Next() {
		var zone sql.NullString
		if err := rows.Scan(&t.ID, &t.EventID, &t.Status, &zone); err != nil {
			return nil, err
		}
		found = true
		if zone.Valid {
			t.Entitlements = append(t.Entitlements, zone.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTicketNotFound
	}
	if t.Entitlements == nil {
		t.Entitlements = []string{}
	}
	return &t, nil
}

// Consume performs the authoritative ACTIVE -> USED transition. It is a
// single conditional UPDATE: the status predicate and the mutation are one
// statement, so the database serializes conflicting callers on the row and
// exactly one concurrent Consume for the same ticket observes true. Any
// other outcome (already USED, REVOKED, or missing) affects zero rows and
// returns false without mutation, which also makes retries idempotent.
func (r *TicketRepo) Consume(ctx context.Context, ticketID, gateID string) (bool, error) {
	const q = `UPDATE tickets
	           SET status = 'USED', used_by_gate = ?, used_at = UTC_TIMESTAMP()
	           WHERE id = ? AND status = 'ACTIVE'`
	res, err := r.db.ExecContext(ctx, q, gateID, ticketID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
