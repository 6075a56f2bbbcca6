package model

import "time"

// Ticket statuses as stored in the durable tickets table. Transitions are
// monotonic: ACTIVE is the only state this service mutates, and the only
// transition it performs is ACTIVE -> USED. REVOKED is written by the
// issuance system and is terminal here.
const (
	StatusActive  = "ACTIVE"
	StatusUsed    = "USED"
	StatusRevoked = "REVOKED"
)

// Ticket is the durable record for a single entry credential.
//
// Fields:
//  ID           – ticket identifier (tickets.id).
//  EventID      – event the ticket belongs to (tickets.event_id).
//  Status       – current lifecycle state (ACTIVE, USED, REVOKED).
//  Entitlements – zone identifiers the ticket grants access to; an
//                 order-irrelevant set joined from zone_entitlements.
//  UsedByGate   – gate that consumed the ticket (nullable).
//  UsedAt       – consumption timestamp (nullable).
type Ticket struct {
	ID           string     // tickets.id
	EventID      string     // tickets.event_id
	Status       string     // tickets.status
	Entitlements []string   // zone_entitlements.zone_id, aggregated
	UsedByGate   *string    // tickets.used_by_gate (nullable)
	UsedAt       *time.Time // tickets.used_at (nullable)
}

// TicketView is the time-bounded cached copy of a ticket served from Redis
// under the key "ticket:<ticketId>". It is derived state: it may be stale
// within its TTL and must never be treated as the authority for the
// ACTIVE -> USED decision. The JSON field names are part of the shared
// cache layout and must not change.
type TicketView struct {
	TicketID     string   `json:"ticketId"`
	Status       string   `json:"status"`
	EventID      string   `json:"eventId"`
	Entitlements []string `json:"entitlements"`
}

// ViewOf builds the cacheable view of a durable ticket record.
func ViewOf(t *Ticket) TicketView {
	ents := t.Entitlements
	if ents == nil {
		ents = []string{}
	}
	return TicketView{
		TicketID:     t.ID,
		Status:       t.Status,
		EventID:      t.EventID,
		Entitlements: ents,
	}
}

// GateLogEntry is one element of the append-only per-event scan log kept
// under "scanlog:gate:<eventId>". Write-once; Ts is Unix milliseconds to
// stay interoperable with existing log consumers.
type GateLogEntry struct {
	TicketID string `json:"ticketId"`
	GateID   string `json:"gateId"`
	Ts       int64  `json:"ts"`
}
