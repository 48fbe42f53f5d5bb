package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tripinvite/portal/internal/repository"
)

// LookupGuard throttles clients that keep presenting unknown invite tokens.
type LookupGuard interface {
	Blocked(ctx context.Context, client string) (bool, error)
	// RecordMiss counts one unknown-token lookup and reports whether the client is now blocked.
	RecordMiss(ctx context.Context, client string) (bool, error)
}

type lookupGuard struct {
	store     repository.StateStore
	maxMisses int
	window    time.Duration
}

// NewLookupGuard returns a guard that blocks after maxMisses misses inside window.
// A non-positive maxMisses disables blocking.
func NewLookupGuard(store repository.StateStore, maxMisses int, window time.Duration) LookupGuard {
	return &lookupGuard{store: store, maxMisses: maxMisses, window: window}
}

func (g *lookupGuard) Blocked(ctx context.Context, client string) (bool, error) {
	if g.maxMisses <= 0 {
		return false, nil
	}
	raw, err := g.store.Get(ctx, guardKey(client))
	if err != nil {
		return false, fmt.Errorf("read lookup counter: %w", err)
	}
	if raw == nil {
		return false, nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse lookup counter: %w", err)
	}
	return n >= int64(g.maxMisses), nil
}

func (g *lookupGuard) RecordMiss(ctx context.Context, client string) (bool, error) {
	if g.maxMisses <= 0 {
		return false, nil
	}
	n, err := g.store.Incr(ctx, guardKey(client), g.window)
	if err != nil {
		return false, fmt.Errorf("count lookup miss: %w", err)
	}
	return n >= int64(g.maxMisses), nil
}

func guardKey(client string) string { return "guard:" + client }

var _ LookupGuard = (*lookupGuard)(nil)
