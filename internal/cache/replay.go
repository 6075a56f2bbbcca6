package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReplayGuard is the fast, advisory exactly-once admission filter shared by
// all gate instances. Admission is a single atomic SET NX with expiry on
// "used:<ticketId>": within one TTL window, only the caller that creates
// the marker is admitted. The marker expires on its own and is never
// deleted; after expiry a retried scan falls through to the durable
// consume, which remains the sole authority for "at most one entry".
type ReplayGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewReplayGuard returns a ReplayGuard whose markers live for the given TTL.
func NewReplayGuard(rdb *redis.Client, ttl time.Duration) *ReplayGuard {
	return &ReplayGuard{rdb: rdb, ttl: ttl}
}

// Admit returns true exactly once per ticket within the current window.
// A Redis failure propagates to the caller: the guard must never silently
// admit when its store is unreachable.
func (g *ReplayGuard) Admit(ctx context.Context, ticketID string) (bool, error) {
	return g.rdb.SetNX(ctx, replayKey(ticketID), "1", g.ttl).Result()
}
