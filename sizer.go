// FILE: sizer.go
// Package main – ATR-based position sizing.
//
// PositionSizer converts an admitted intent into a share quantity from the
// account's per-trade risk budget and a volatility-derived stop distance:
//
//   stop   = atr × StopATRMult      (must be > 0)
//   risk   = equity × RiskPerTrade
//   shares = floor(risk / stop)
//
// The sizer imposes no cap of its own; MAX_POS_SIZE belongs to the gate.
// When the computed quantity comes out <= 0 the *caller* substitutes a
// minimum of 1 share instead of skipping the trade (see trader.go).
//
// ATR(c, n) is kept here because the sizer is its only consumer; outputs are
// aligned to input length with NaN for unavailable lookbacks, same
// conventions as the rest of the pipeline's helpers.

package main

import (
	"fmt"
	"math"
)

// ErrInvalidStopDistance reports a non-positive stop (bad ATR or multiple).
// Surfaced immediately; never defaulted.
var ErrInvalidStopDistance = fmt.Errorf("invalid_stop_distance")

// PositionSizer holds the sizing knobs, fixed at startup.
type PositionSizer struct {
	RiskPerTrade float64 // fraction of equity risked per trade
	StopATRMult  float64
}

// Size resolves intent into a SizedOrder. An explicit quantity hint on the
// intent wins over ATR sizing; the hint is still subject to the gate's
// MAX_POS_SIZE, checked before sizing ever runs.
func (s PositionSizer) Size(intent OrderIntent, equityUSD, atr float64) (SizedOrder, error) {
	if intent.Quantity != 0 {
		return SizedOrder{OrderIntent: intent, ResolvedQty: abs(intent.Quantity)}, nil
	}
	stop := atr * s.StopATRMult
	if stop <= 0 || math.IsNaN(stop) {
		return SizedOrder{}, fmt.Errorf("%w: atr=%.4f mult=%.2f", ErrInvalidStopDistance, atr, s.StopATRMult)
	}
	risk := equityUSD * s.RiskPerTrade
	qty := int(math.Floor(risk / stop))
	return SizedOrder{OrderIntent: intent, ResolvedQty: qty, RiskUSD: risk}, nil
}

// ATR returns the n-period Average True Range (Wilder's smoothing), aligned
// to c. Indices < n hold NaN.
func ATR(c []Candle, n int) []float64 {
	out := make([]float64, len(c))
	for i := range out {
		out[i] = math.NaN()
	}
	if n <= 0 || len(c) <= n {
		return out
	}
	tr := make([]float64, len(c))
	tr[0] = c[0].High - c[0].Low
	for i := 1; i < len(c); i++ {
		hl := c[i].High - c[i].Low
		hc := math.Abs(c[i].High - c[i-1].Close)
		lc := math.Abs(c[i].Low - c[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	sum := 0.0
	for i := 1; i <= n; i++ {
		sum += tr[i]
	}
	out[n] = sum / float64(n)
	for i := n + 1; i < len(c); i++ {
		out[i] = (out[i-1]*float64(n-1) + tr[i]) / float64(n)
	}
	return out
}
