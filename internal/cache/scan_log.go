package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/SAFE-MLC/safe-gate-ms/internal/model"
)

// ScanLog is the append-only, per-event record of successful consumptions,
// kept as a Redis list under "scanlog:gate:<eventId>". It is purely
// observational: nothing in the admission path reads it, and append
// failures never roll back a consumption.
type ScanLog struct {
	rdb *redis.Client
}

// NewScanLog returns a ScanLog bound to the provided Redis client.
func NewScanLog(rdb *redis.Client) *ScanLog { return &ScanLog{rdb: rdb} }

// Append pushes a JSON-encoded entry onto the event's log. Entries are
// ordered per event by the RPUSH itself.
func (l *ScanLog) Append(ctx context.Context, eventID string, entry model.GateLogEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return l.rdb.RPush(ctx, scanLogKey(eventID), body).Err()
}
