package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SAFE-MLC/safe-gate-ms/internal/model"
)

// ViewCache stores time-bounded copies of ticket state under
// "ticket:<ticketId>". Entries are derived, never authoritative: the TTL
// bounds how long a stale ACTIVE view can be served before a reader falls
// back to the durable store. Only the ticket directory writes here.
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewViewCache returns a ViewCache writing entries with the given TTL.
func NewViewCache(rdb *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached view for a ticket, or (nil, nil) on a miss. An
// entry that fails to decode is treated as a miss as well; the next Set
// overwrites it.
func (c *ViewCache) Get(ctx context.Context, ticketID string) (*model.TicketView, error) {
	raw, err := c.rdb.Get(ctx, ticketKey(ticketID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var view model.TicketView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, nil
	}
	return &view, nil
}

// Set writes the JSON-encoded view with the cache TTL, overwriting any
// existing entry for the ticket.
func (c *ViewCache) Set(ctx context.Context, view model.TicketView) error {
	body, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ticketKey(view.TicketID), body, c.ttl).Err()
}
