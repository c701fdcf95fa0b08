// FILE: throttle.go
// Package main – Per-window trade throttle.
//
// WindowThrottle counts admitted trades per (date, window) bucket and caps
// them at MaxTradesPerWindow. The counter map is owned exclusively by this
// type and constructor-injected into the gate; nothing else mutates it.
//
// Admit and Record are separate calls because admission also depends on
// checks the throttle knows nothing about (protected symbols, broker risk).
// The gate serializes the admit → record pair under its own evaluation lock,
// so the cap invariant holds under concurrent callers (see gate.go).
//
// Buckets for past days are useless after settlement; stale keys are evicted
// on Record once they are older than two calendar days, so the map stays
// bounded for a long-lived process.

package main

import (
	"sync"
	"time"
)

// evictAfterDays is the age, in calendar days, past which a bucket is dropped.
const evictAfterDays = 2

// WindowThrottle enforces the per-window admitted-trade cap.
type WindowThrottle struct {
	registry *TradeWindowRegistry
	capPer   int

	mu     sync.Mutex
	counts map[WindowKey]int
}

// NewWindowThrottle builds a throttle over the given registry. capPerWindow
// must be positive; a zero cap would silently block all trading.
func NewWindowThrottle(registry *TradeWindowRegistry, capPerWindow int) *WindowThrottle {
	return &WindowThrottle{
		registry: registry,
		capPer:   capPerWindow,
		counts:   make(map[WindowKey]int),
	}
}

// Admit reports whether ts falls inside a configured window AND the bucket
// still has room under the cap.
func (t *WindowThrottle) Admit(ts time.Time) bool {
	key, ok := t.registry.KeyAt(ts)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key] < t.capPer
}

// Record increments the bucket for ts. No-op outside any window. Called by
// the gate exactly once per admitted trade.
func (t *WindowThrottle) Record(ts time.Time) {
	key, ok := t.registry.KeyAt(ts)
	if !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[key]++
	t.evictStaleLocked(key.Date)
}

// Count returns the current tally for the bucket containing ts (0 when ts is
// outside every window). Used by logs and tests.
func (t *WindowThrottle) Count(ts time.Time) int {
	key, ok := t.registry.KeyAt(ts)
	if !ok {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key]
}

// evictStaleLocked drops buckets older than evictAfterDays relative to the
// given ISO date. ISO dates order lexicographically, so a string compare
// against the cutoff is enough. Caller holds t.mu.
func (t *WindowThrottle) evictStaleLocked(today string) {
	day, err := time.Parse("2006-01-02", today)
	if err != nil {
		return
	}
	cutoff := day.AddDate(0, 0, -evictAfterDays).Format("2006-01-02")
	for key := range t.counts {
		if key.Date < cutoff {
			delete(t.counts, key)
			IncWindowKeyEvicted()
		}
	}
}
