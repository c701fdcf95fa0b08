// FILE: live.go
// Package main – Live loop and safety banner.
//
// runLive drives the trading loop in real time: every intervalSec seconds it
// runs one synchronized Trader.step (signal → gate → size → submit) until
// the context is canceled. Decisions are fast and synchronous; ticks that
// arrive while a step is still talking to the broker simply queue behind it.

package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// runLive executes the real-time loop with cadence intervalSec (seconds).
func runLive(ctx context.Context, trader *Trader, intervalSec int) {
	if intervalSec <= 0 {
		intervalSec = 60
	}
	logrus.Infof("[BOOT] starting: symbol=%s strategy=%s dry_run=%v offline=%v",
		trader.cfg.Symbol, trader.producer.Kind(), trader.cfg.DryRun, trader.cfg.OfflineMode)

	// Safety banner for operators.
	logrus.Infof("[SAFETY] KILL_SWITCH=%v | MAX_POS_SIZE=%d | MAX_TRADES_PER_WINDOW=%d | PROTECTED=%v | RISK_PER_TRADE=%.4f | STOP_ATR_MULT=%.2f | windows=%v",
		trader.cfg.KillSwitch, trader.cfg.MaxPosSize, trader.cfg.MaxTradesPerWindow,
		trader.cfg.ProtectedSymbols, trader.cfg.RiskPerTrade, trader.cfg.StopATRMult,
		trader.gate.windows.Windows())

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("shutdown")
			return
		case <-ticker.C:
			trader.step(ctx)
		}
	}
}
