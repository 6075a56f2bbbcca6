// Package cache holds the Redis-backed components shared by every gate
// instance: the ticket view cache, the anti-replay guard and the per-event
// scan log. The key layout below is shared state consumed by other systems
// and must be preserved exactly.
package cache

// Key builders for the shared Redis layout:
//
//	ticket:<ticketId>        JSON-encoded ticket view, TTL-bounded
//	used:<ticketId>          replay marker, created only via SET NX
//	scanlog:gate:<eventId>   append-only list of JSON gate log entries
func ticketKey(ticketID string) string { return "ticket:" + ticketID }

func replayKey(ticketID string) string { return "used:" + ticketID }

func scanLogKey(eventID string) string { return "scanlog:gate:" + eventID }
