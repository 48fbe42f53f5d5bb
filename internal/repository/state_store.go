package repository

import (
	"context"
	"time"
)

// StateStore abstracts ephemeral key-value state that is not part of the
// invite store: lookup throttling counters and notification receipts.
// Implementations: Redis (multi-instance) or in-memory (single instance).
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil, nil for a missing or expired key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Incr increments a counter, starting a ttl window when the key is created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
