// FILE: clock.go
// Package main – Time source for window checks.
//
// The gate never calls time.Now directly; it reads a Clock so tests can pin
// timestamps and all window math happens in the exchange-local zone.

package main

import (
	"fmt"
	"time"
)

// Clock supplies the current time in the market's time zone.
type Clock interface {
	Now() time.Time
}

type marketClock struct {
	loc *time.Location
}

func (c marketClock) Now() time.Time { return time.Now().In(c.loc) }

// NewMarketClock builds a wall clock pinned to the named zone,
// e.g. "America/Los_Angeles".
func NewMarketClock(tz string) (Clock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("market tz %q: %w", tz, err)
	}
	return marketClock{loc: loc}, nil
}

// fixedClock returns a constant instant; test use only.
type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }
