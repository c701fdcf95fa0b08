// FILE: main.go
// Package main – Program entrypoint and HTTP/metrics server.
//
// Boot sequence:
//   1) loadBotEnv()                – read .env (no shell exports required)
//   2) initLogger()                – console + rotating file output
//   3) cfg := loadConfigFromEnv()  – build runtime Config (+ RULES_FILE overlay)
//   4) wire clock/windows/throttle/policy/broker/strategy/gate/trader
//   5) start Prometheus /healthz server on cfg.Port
//   6) run -once or the live loop
//
// Flags:
//   -live             Run the real-time loop
//   -once             Evaluate a single step and exit (ops smoke check)
//   -interval <sec>   Live loop interval in seconds (default 60)
//
// Example:
//   go run . -live -interval 15
//
// Notes:
//   - With BROKER_URL unset, the in-memory paper backend serves orders,
//     account state, and (stand-aside) signals.
//   - Malformed windows, unknown strategies, and bad time zones are fatal
//     here — gating rules never fall back to defaults silently.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// ---- Flags ----
	var live bool
	var once bool
	var intervalSec int
	flag.BoolVar(&live, "live", false, "Run the real-time loop")
	flag.BoolVar(&once, "once", false, "Evaluate a single step and exit")
	flag.IntVar(&intervalSec, "interval", 60, "Live loop interval in seconds")
	flag.Parse()

	// ---- Environment, logging & config ----
	loadBotEnv()
	cfg := loadConfigFromEnv()
	if err := initLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		logrus.Fatalf("logger init: %v", err)
	}
	if err := cfg.applyRulesFile(); err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if cfg.AccountID == "" {
		logrus.Fatalf("config: ACCOUNT_ID is required")
	}
	if cfg.Symbol == "" {
		logrus.Fatalf("config: SYMBOL is required")
	}

	// ---- Gate plumbing ----
	clock, err := NewMarketClock(cfg.MarketTZ)
	if err != nil {
		logrus.Fatalf("clock: %v", err)
	}
	windows, err := ParseTradeWindows(cfg.TradeWindows)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	registry, err := NewTradeWindowRegistry(windows)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	throttle := NewWindowThrottle(registry, cfg.MaxTradesPerWindow)
	protected := NewProtectedSymbolPolicy(cfg.ProtectedSymbols)

	// ---- Broker wiring ----
	var dispatcher OrderDispatcher
	var accounts AccountRiskService
	var feed SignalFeed
	if cfg.BrokerURL != "" {
		hb := NewHTTPBroker(cfg.BrokerURL, cfg.AccountID, time.Duration(cfg.BrokerTimeoutSec)*time.Second)
		dispatcher, accounts, feed = hb, hb, hb
	} else {
		pb := NewPaperBroker(cfg.AccountID, cfg.USDEquity)
		dispatcher, accounts, feed = pb, pb, pb
	}
	logrus.Infof("[BOOT] broker=%s account=%s", dispatcher.Name(), cfg.AccountID)

	producer, err := SelectStrategy(cfg.Strategy, cfg.StratParams, cfg.Symbol, feed)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	executor := NewOrderExecutor(cfg.AccountID, dispatcher)
	sizer := PositionSizer{RiskPerTrade: cfg.RiskPerTrade, StopATRMult: cfg.StopATRMult}

	// The trader is both the step driver and the gate's liquidation
	// collaborator, so wire the gate after it exists.
	gate := NewRiskGate(registry, throttle, protected, accounts, nil, clock)
	trader := NewTrader(cfg, clock, gate, sizer, executor, producer, accounts)
	gate.liquidator = trader

	// ---- HTTP metrics/health ----
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
	go func() {
		logrus.Infof("serving metrics on :%d/metrics", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server: %v", err)
		}
	}()

	// ---- Run selected mode ----
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case once:
		trader.step(ctx)
	case live:
		runLive(ctx, trader, intervalSec)
	default:
		flag.Usage()
	}

	// ---- Graceful shutdown for HTTP server ----
	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
}
