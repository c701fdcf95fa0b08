// FILE: trader.go
// Package main – The synchronized trading step (signal → gate → size → submit).
//
// What's here:
//   • Trader: holds config, clock, gate, sizer, executor, producer, account
//     service, and the equity snapshot
//   • step(): one trading decision evaluated to completion
//   • LiquidateAll(): the flatten-everything path the gate fires on breach
//
// Concurrency design:
//   - One intent is evaluated to completion before the next; the live loop
//     calls step() sequentially and the gate additionally serializes
//     Evaluate internally, so the window-cap invariant holds even if a
//     second caller (e.g. an ops endpoint) ever drives step concurrently.
//   - The trader mutex only guards the equity snapshot; it is never held
//     across network I/O.

package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Trader drives one full decision per tick.
type Trader struct {
	cfg      Config
	clock    Clock
	gate     *RiskGate
	sizer    PositionSizer
	exec     *OrderExecutor
	producer *IntentProducer
	accounts AccountRiskService

	mu        sync.Mutex
	equityUSD float64
}

func NewTrader(cfg Config, clock Clock, gate *RiskGate, sizer PositionSizer,
	exec *OrderExecutor, producer *IntentProducer, accounts AccountRiskService) *Trader {
	t := &Trader{
		cfg:       cfg,
		clock:     clock,
		gate:      gate,
		sizer:     sizer,
		exec:      exec,
		producer:  producer,
		accounts:  accounts,
		equityUSD: cfg.USDEquity,
	}
	SetEquityMetric(t.equityUSD)
	return t
}

// step runs one decision: produce an intent, gate it, size it, submit it.
// Returns the terminal result, or nil when the strategy stands aside or the
// gate denies.
func (t *Trader) step(ctx context.Context) *OrderResult {
	intent, atr, err := t.producer.Produce(ctx)
	if err != nil {
		logrus.Errorf("[SIGNAL] produce failed: %v", err)
		return nil
	}
	if intent == nil {
		logrus.Debugf("[SIGNAL] no trade for %s", t.cfg.Symbol)
		return nil
	}

	// One consistent limits snapshot for the whole decision.
	limits := t.cfg.Limits()

	admitted, reason := t.gate.Evaluate(ctx, *intent, limits)
	if !admitted {
		logrus.Infof("[STEP] %s %s blocked: %s", intent.Side, intent.Symbol, reason)
		return nil
	}

	t.refreshEquity(ctx, limits)

	sized, err := t.sizer.Size(*intent, t.equity(), atr)
	if err != nil {
		logrus.Errorf("[SIZER] %s: %v", intent.Symbol, err)
		return nil
	}
	if sized.ResolvedQty <= 0 {
		// Documented fallback: trade the minimum unit rather than skipping.
		logrus.Warnf("[SIZER] computed qty=%d for %s, substituting 1", sized.ResolvedQty, intent.Symbol)
		sized.ResolvedQty = 1
	}
	// The gate can only cap a quantity hint; the ATR-resolved size must
	// honor MAX_POS_SIZE too.
	if sized.ResolvedQty > limits.MaxPosSize {
		logrus.Warnf("[GATE] sized qty %d exceeds MAX_POS_SIZE %d for %s", sized.ResolvedQty, limits.MaxPosSize, intent.Symbol)
		IncGateDecision(ReasonMaxPosExceeded)
		return nil
	}
	logrus.Infof("[SIZER] %s qty=%d (risk=%.2f atr=%.4f)", intent.Symbol, sized.ResolvedQty, sized.RiskUSD, atr)

	result := t.exec.Submit(ctx, sized, limits.DryRun)
	switch result.Status {
	case StatusSimulated:
		logrus.Infof("[STEP] simulated %s %s x%d", sized.Side, sized.Symbol, result.Payload.Quantity)
	case StatusSubmitted:
		logrus.Infof("[STEP] submitted %s %s x%d order_id=%s", sized.Side, sized.Symbol, result.Payload.Quantity, result.BrokerResponse.OrderID)
	case StatusRejected:
		logrus.Errorf("[STEP] rejected %s %s: %v", sized.Side, sized.Symbol, result.Err)
	}
	return &result
}

// LiquidateAll closes every open position through the executor. Fired by the
// gate as a side effect when broker limits are breached and AUTO_LIQUIDATE
// is set; also callable by ops tooling. Closes honor DRY_RUN the same way
// submissions do: a simulating process never transmits real orders.
func (t *Trader) LiquidateAll(ctx context.Context) error {
	acct, err := t.accounts.Snapshot(ctx)
	if err != nil {
		return err
	}
	limits := t.cfg.Limits()
	logrus.Warnf("[RISK] liquidating %d open positions (dry_run=%v)", len(acct.Positions), limits.DryRun)
	var firstErr error
	for _, pos := range acct.Positions {
		if pos.Quantity == 0 {
			continue
		}
		res := t.exec.Close(ctx, pos.Symbol, limits.DryRun)
		if res.Status == StatusRejected && firstErr == nil {
			firstErr = res.Err
		}
	}
	return firstErr
}

// refreshEquity rebases the equity snapshot from the live account unless we
// are offline or dry-running with a fixed USD_EQUITY.
func (t *Trader) refreshEquity(ctx context.Context, limits RiskLimits) {
	if limits.DryRun || limits.OfflineMode {
		return
	}
	acct, err := t.accounts.Snapshot(ctx)
	if err != nil {
		logrus.Warnf("[EQUITY] snapshot failed, keeping %.2f: %v", t.equity(), err)
		return
	}
	t.mu.Lock()
	t.equityUSD = acct.EquityUSD
	t.mu.Unlock()
	SetEquityMetric(acct.EquityUSD)
}

func (t *Trader) equity() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.equityUSD
}
