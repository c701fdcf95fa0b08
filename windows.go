// FILE: windows.go
// Package main – Trading window definitions and lookup.
//
// A TradeWindow is a time-of-day interval in the exchange-local zone. The
// registry holds the ordered, immutable window list and answers "which
// window (if any) contains this timestamp" as a WindowKey, the bucket the
// throttle counts admitted trades under.
//
// Rules:
//   • Bounds are inclusive on both ends.
//   • First registered match wins; overlapping windows are a configuration
//     error rejected at construction, not a runtime fault.

package main

import (
	"fmt"
	"strings"
	"time"
)

// TradeWindow is a [start, end] interval, stored as seconds since midnight.
type TradeWindow struct {
	StartSec int
	EndSec   int
}

func (w TradeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.StartSec/3600, w.StartSec%3600/60, w.EndSec/3600, w.EndSec%3600/60)
}

func (w TradeWindow) contains(secOfDay int) bool {
	return secOfDay >= w.StartSec && secOfDay <= w.EndSec
}

// WindowKey identifies one throttling bucket: a calendar date in the market
// zone plus the window's registration index. Date is ISO formatted so keys
// compare chronologically as strings.
type WindowKey struct {
	Date  string // "2006-01-02"
	Index int
}

// TradeWindowRegistry is the ordered, immutable window list.
type TradeWindowRegistry struct {
	windows []TradeWindow
}

// NewTradeWindowRegistry validates and freezes the window list. Empty lists,
// inverted intervals, and overlaps are all rejected here so the gate can
// treat lookup as infallible.
func NewTradeWindowRegistry(windows []TradeWindow) (*TradeWindowRegistry, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("trade windows: none configured")
	}
	for i, w := range windows {
		if w.StartSec < 0 || w.EndSec >= 24*3600 {
			return nil, fmt.Errorf("trade windows: window %d (%s) out of range", i, w)
		}
		if w.StartSec > w.EndSec {
			return nil, fmt.Errorf("trade windows: window %d (%s) start after end", i, w)
		}
		for j := 0; j < i; j++ {
			o := windows[j]
			if w.StartSec <= o.EndSec && o.StartSec <= w.EndSec {
				return nil, fmt.Errorf("trade windows: window %d (%s) overlaps window %d (%s)", i, w, j, o)
			}
		}
	}
	return &TradeWindowRegistry{windows: append([]TradeWindow(nil), windows...)}, nil
}

// KeyAt returns the bucket for ts, or ok=false when ts falls outside every
// configured window. The timestamp is interpreted in its own location, which
// the caller's Clock pins to the market zone.
func (r *TradeWindowRegistry) KeyAt(ts time.Time) (WindowKey, bool) {
	sec := ts.Hour()*3600 + ts.Minute()*60 + ts.Second()
	for i, w := range r.windows {
		if w.contains(sec) {
			return WindowKey{Date: ts.Format("2006-01-02"), Index: i}, true
		}
	}
	return WindowKey{}, false
}

// InWindow reports whether ts falls inside any configured window.
func (r *TradeWindowRegistry) InWindow(ts time.Time) bool {
	_, ok := r.KeyAt(ts)
	return ok
}

// Windows returns a copy of the configured list (for banners/logging).
func (r *TradeWindowRegistry) Windows() []TradeWindow {
	return append([]TradeWindow(nil), r.windows...)
}

// ParseTradeWindows parses "06:30-07:30,12:00-13:00" into window values.
func ParseTradeWindows(spec string) ([]TradeWindow, error) {
	var out []TradeWindow
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("trade windows: %q is not HH:MM-HH:MM", part)
		}
		start, err := parseTimeOfDay(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("trade windows: %q: %w", part, err)
		}
		end, err := parseTimeOfDay(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("trade windows: %q: %w", part, err)
		}
		out = append(out, TradeWindow{StartSec: start, EndSec: end})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("trade windows: %q defines no windows", spec)
	}
	return out, nil
}

// parseTimeOfDay converts "HH:MM" to seconds since midnight.
func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60, nil
}
