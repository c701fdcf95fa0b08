// FILE: gate.go
// Package main – The pre-trade risk gate.
//
// RiskGate composes the window throttle, the protected-symbol policy, and
// the account-level limits into a single admit/deny decision with a stable,
// machine-readable reason string. Check order (short-circuit on first fail):
//
//   1. kill switch
//   2. |quantity| vs MAX_POS_SIZE (when a quantity hint is present)
//   3. inside a configured trading window
//   4. protected-symbol never-sell
//   5. per-window trade cap
//   6. OFFLINE_MODE bypass (skip broker check, admit)
//   7. broker-side risk limits (transport failure = conservative deny)
//
// Concurrency: Evaluate holds the gate mutex end to end. The cap check and
// the counter increment must be one critical section or two concurrent
// callers could both see room under the cap; serializing whole evaluations
// is the simplest structure that preserves "at most N admitted per window".
// The only blocking call inside the lock is the broker risk check, which is
// bounded by the client timeout.
//
// Side effects (auto-liquidate) run in a goroutine and never change the
// current decision; they protect the *next* one.

package main

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Denial reasons. Stable strings, suitable for logs and metric labels.
const (
	ReasonKillSwitch       = "kill_switch_active"
	ReasonMaxPosExceeded   = "max_position_exceeded"
	ReasonOutsideWindow    = "outside_trading_window"
	ReasonProtectedNoSell  = "protected_symbol_no_sell"
	ReasonWindowCapReached = "window_trade_cap_reached"
	ReasonBrokerRiskBreach = "broker_risk_breach"

	// reasonAdmitted labels the admit outcome in metrics; Evaluate returns
	// an empty reason string on admission.
	reasonAdmitted = "admitted"
)

// liquidateTimeout bounds the detached auto-liquidation side effect.
const liquidateTimeout = 30 * time.Second

// RiskGate is the admission controller in front of the executor.
type RiskGate struct {
	windows    *TradeWindowRegistry
	throttle   *WindowThrottle
	protected  *ProtectedSymbolPolicy
	accounts   AccountRiskService
	liquidator Liquidator
	clock      Clock

	// mu serializes evaluations; see the file header.
	mu sync.Mutex
}

// NewRiskGate wires the gate's collaborators. liquidator may be nil when
// auto-liquidation is disabled at the deployment level.
func NewRiskGate(windows *TradeWindowRegistry, throttle *WindowThrottle,
	protected *ProtectedSymbolPolicy, accounts AccountRiskService,
	liquidator Liquidator, clock Clock) *RiskGate {
	return &RiskGate{
		windows:    windows,
		throttle:   throttle,
		protected:  protected,
		accounts:   accounts,
		liquidator: liquidator,
		clock:      clock,
	}
}

// Evaluate decides whether intent may proceed under limits. It returns
// (true, "") on admission and (false, reason) otherwise. On admission the
// window counter is recorded exactly once, inside the same critical section
// as the cap check.
func (g *RiskGate) Evaluate(ctx context.Context, intent OrderIntent, limits RiskLimits) (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()

	if limits.KillSwitch {
		logrus.Errorf("[GATE] kill switch active - blocking orders")
		return g.deny(intent, ReasonKillSwitch)
	}
	if intent.Quantity != 0 && abs(intent.Quantity) > limits.MaxPosSize {
		logrus.Warnf("[GATE] qty %d exceeds MAX_POS_SIZE %d for %s", intent.Quantity, limits.MaxPosSize, intent.Symbol)
		return g.deny(intent, ReasonMaxPosExceeded)
	}
	if !g.windows.InWindow(now) {
		return g.deny(intent, ReasonOutsideWindow)
	}
	if g.protected.IsBlocked(intent.Symbol, intent.Side) {
		logrus.Warnf("[GATE] %s is protected, refusing sell", intent.Symbol)
		return g.deny(intent, ReasonProtectedNoSell)
	}
	if !g.throttle.Admit(now) {
		return g.deny(intent, ReasonWindowCapReached)
	}

	if limits.OfflineMode {
		logrus.Infof("[GATE] OFFLINE_MODE=true -> skipping broker risk checks")
		return g.admit(intent, now)
	}

	ok, breaches, err := g.accounts.CheckRiskLimits(ctx)
	if err != nil {
		// The check could not be completed; deny rather than admit blind.
		logrus.Errorf("[RISK] limit check failed: %v", err)
		return g.deny(intent, ReasonBrokerRiskBreach)
	}
	if !ok {
		logrus.Errorf("[RISK] limits breached: %v", breaches)
		if limits.AutoLiquidate && g.liquidator != nil {
			go g.fireLiquidation()
		}
		return g.deny(intent, ReasonBrokerRiskBreach)
	}

	return g.admit(intent, now)
}

func (g *RiskGate) admit(intent OrderIntent, now time.Time) (bool, string) {
	g.throttle.Record(now)
	IncGateDecision(reasonAdmitted)
	logrus.Infof("[GATE] admitted %s %s (window trades=%d)", intent.Side, intent.Symbol, g.throttle.Count(now))
	return true, ""
}

func (g *RiskGate) deny(intent OrderIntent, reason string) (bool, string) {
	IncGateDecision(reason)
	logrus.Infof("[GATE] denied %s %s: %s", intent.Side, intent.Symbol, reason)
	return false, reason
}

// fireLiquidation runs the auto-liquidate side effect detached from the
// denying evaluation, with its own deadline.
func (g *RiskGate) fireLiquidation() {
	ctx, cancel := context.WithTimeout(context.Background(), liquidateTimeout)
	defer cancel()
	IncAutoLiquidation()
	if err := g.liquidator.LiquidateAll(ctx); err != nil {
		logrus.Errorf("[RISK] auto-liquidate failed: %v", err)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
