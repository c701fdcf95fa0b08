// FILE: windows_test.go
// Package main – Trading window parsing and lookup tests.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustWindows(t *testing.T, spec string) *TradeWindowRegistry {
	t.Helper()
	ws, err := ParseTradeWindows(spec)
	require.NoError(t, err)
	reg, err := NewTradeWindowRegistry(ws)
	require.NoError(t, err)
	return reg
}

func at(t *testing.T, hh, mm, ss int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 4, hh, mm, ss, 0, time.UTC)
}

func TestParseTradeWindows(t *testing.T) {
	ws, err := ParseTradeWindows("06:30-07:30,12:00-13:00")
	require.NoError(t, err)
	require.Len(t, ws, 2)
	require.Equal(t, 6*3600+30*60, ws[0].StartSec)
	require.Equal(t, 7*3600+30*60, ws[0].EndSec)
	require.Equal(t, "06:30-07:30", ws[0].String())

	_, err = ParseTradeWindows("0630-0730")
	require.Error(t, err)
	_, err = ParseTradeWindows("06:30")
	require.Error(t, err)
	_, err = ParseTradeWindows("")
	require.Error(t, err)
	_, err = ParseTradeWindows("25:00-26:00")
	require.Error(t, err)
}

func TestRegistryRejectsBadConfig(t *testing.T) {
	// Inverted interval.
	_, err := NewTradeWindowRegistry([]TradeWindow{{StartSec: 7 * 3600, EndSec: 6 * 3600}})
	require.Error(t, err)

	// Overlap is a configuration error, not a runtime tie-break.
	_, err = NewTradeWindowRegistry([]TradeWindow{
		{StartSec: 6 * 3600, EndSec: 8 * 3600},
		{StartSec: 7 * 3600, EndSec: 9 * 3600},
	})
	require.Error(t, err)

	// Empty list.
	_, err = NewTradeWindowRegistry(nil)
	require.Error(t, err)
}

func TestKeyAtInclusiveBounds(t *testing.T) {
	reg := mustWindows(t, "06:30-07:30,12:00-13:00")

	key, ok := reg.KeyAt(at(t, 6, 30, 0))
	require.True(t, ok, "start bound is inclusive")
	require.Equal(t, WindowKey{Date: "2026-03-04", Index: 0}, key)

	key, ok = reg.KeyAt(at(t, 7, 30, 0))
	require.True(t, ok, "end bound is inclusive")
	require.Equal(t, 0, key.Index)

	_, ok = reg.KeyAt(at(t, 7, 30, 1))
	require.False(t, ok, "one second past the end is outside")

	_, ok = reg.KeyAt(at(t, 6, 29, 59))
	require.False(t, ok)

	key, ok = reg.KeyAt(at(t, 12, 15, 0))
	require.True(t, ok)
	require.Equal(t, 1, key.Index)

	_, ok = reg.KeyAt(at(t, 9, 0, 0))
	require.False(t, ok)
}

func TestKeyAtDateFollowsTimestamp(t *testing.T) {
	reg := mustWindows(t, "06:30-07:30")

	k1, ok := reg.KeyAt(time.Date(2026, 3, 4, 7, 0, 0, 0, time.UTC))
	require.True(t, ok)
	k2, ok := reg.KeyAt(time.Date(2026, 3, 5, 7, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.NotEqual(t, k1, k2, "same window on different days is a different bucket")
}
