// Package queue defines message payloads exchanged over the message broker
// and a best-effort publisher for them.
package queue

// TicketScannedEvent is published when a gate successfully consumes a
// ticket. It carries enough information for downstream consumers (live
// attendance dashboards, analytics) to react without querying the primary
// database.
type TicketScannedEvent struct {
	ScanID       string   `json:"scan_id"`
	TicketID     string   `json:"ticket_id"`
	EventID      string   `json:"event_id"`
	GateID       string   `json:"gate_id"`
	Entitlements []string `json:"entitlements"`
	ScannedAt    string   `json:"scanned_at"`
}
