// FILE: config.go
// Package main – Runtime configuration model and loader.
//
// This file defines the Config struct (all the knobs the bot uses) and the
// helpers to populate it from environment variables and an optional YAML
// rules file. The .env file is read by loadBotEnv() (see env.go), so you can
// tune behavior without exports.
//
// Typical flow (see main.go):
//   loadBotEnv()
//   cfg := loadConfigFromEnv()
//   cfg.applyRulesFile()   // optional RULES_FILE overlay
//
// The safety flags (KILL_SWITCH, MAX_POS_SIZE, AUTO_LIQUIDATE, DRY_RUN,
// OFFLINE_MODE) are re-read from env at evaluation time through Limits(), so
// an operator can flip them on a running process that refreshes its env.

package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime knobs for gating and execution.
type Config struct {
	// Account & target
	AccountID string
	Symbol    string // e.g., "AAPL"

	// Safety & limits
	KillSwitch    bool
	MaxPosSize    int
	AutoLiquidate bool
	DryRun        bool
	OfflineMode   bool

	// Trading windows & throttling
	MarketTZ           string // exchange-local zone for window checks
	TradeWindows       string // "06:30-07:30,12:00-13:00"
	MaxTradesPerWindow int
	ProtectedSymbols   []string // never sell these

	// Sizing
	USDEquity    float64
	RiskPerTrade float64 // fraction of equity risked per trade
	StopATRMult  float64

	// Strategy selection
	Strategy    string // ema|macd|rsi_mr
	StratParams string // JSON, e.g. {"fast":9,"slow":21}

	// Ops
	Port             int
	BrokerURL        string // empty selects the in-memory paper broker
	BrokerTimeoutSec int
	LogLevel         string
	LogFile          string
	RulesFile        string // optional YAML overlay for windows/protected/cap
}

// loadConfigFromEnv reads the process env (already hydrated by loadBotEnv())
// and returns a Config with sane defaults if keys are missing.
func loadConfigFromEnv() Config {
	return Config{
		AccountID: getEnv("ACCOUNT_ID", ""),
		Symbol:    getEnv("SYMBOL", ""),

		KillSwitch:    getEnvBool("KILL_SWITCH", false),
		MaxPosSize:    getEnvInt("MAX_POS_SIZE", 100),
		AutoLiquidate: getEnvBool("AUTO_LIQUIDATE", false),
		DryRun:        getEnvBool("DRY_RUN", true),
		OfflineMode:   getEnvBool("OFFLINE_MODE", false),

		MarketTZ:           getEnv("MARKET_TZ", "America/Los_Angeles"),
		TradeWindows:       getEnv("TRADE_WINDOWS", "06:30-07:30,12:00-13:00"),
		MaxTradesPerWindow: getEnvInt("MAX_TRADES_PER_WINDOW", 2),
		ProtectedSymbols:   splitCSV(getEnv("PROTECTED_SYMBOLS", "CWH")),

		USDEquity:    getEnvFloat("USD_EQUITY", 100000.0),
		RiskPerTrade: getEnvFloat("RISK_PER_TRADE", 0.01),
		StopATRMult:  getEnvFloat("STOP_ATR_MULT", 1.5),

		Strategy:    getEnv("STRATEGY", "ema"),
		StratParams: getEnv("STRAT_PARAMS", "{}"),

		Port:             getEnvInt("PORT", 8080),
		BrokerURL:        getEnv("BROKER_URL", ""),
		BrokerTimeoutSec: getEnvInt("BROKER_TIMEOUT_SEC", 10),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", "logs/schwabbot.log"),
		RulesFile:        getEnv("RULES_FILE", ""),
	}
}

// RiskLimits is the account-level limit snapshot the gate reads once per
// evaluation. It is a value type so one decision never sees two versions.
type RiskLimits struct {
	KillSwitch    bool
	MaxPosSize    int
	AutoLiquidate bool
	DryRun        bool
	OfflineMode   bool
}

// Limits snapshots the safety flags at call time. Env wins over the struct's
// boot-time values so a refreshed process env acts as a hot reload.
func (c *Config) Limits() RiskLimits {
	return RiskLimits{
		KillSwitch:    getEnvBool("KILL_SWITCH", c.KillSwitch),
		MaxPosSize:    getEnvInt("MAX_POS_SIZE", c.MaxPosSize),
		AutoLiquidate: getEnvBool("AUTO_LIQUIDATE", c.AutoLiquidate),
		DryRun:        getEnvBool("DRY_RUN", c.DryRun),
		OfflineMode:   getEnvBool("OFFLINE_MODE", c.OfflineMode),
	}
}

// ---- Optional YAML rules overlay ----

// rulesFile mirrors the YAML schema:
//
//	windows:
//	  - "06:30-07:30"
//	  - "12:00-13:00"
//	protected_symbols: [CWH]
//	max_trades_per_window: 2
type rulesFile struct {
	Windows            []string `yaml:"windows"`
	ProtectedSymbols   []string `yaml:"protected_symbols"`
	MaxTradesPerWindow int      `yaml:"max_trades_per_window"`
}

// applyRulesFile overlays window/protection rules from cfg.RulesFile onto the
// env-derived config. A missing file when RULES_FILE is set is a hard error:
// gating rules must never silently fall back to defaults.
func (c *Config) applyRulesFile() error {
	if strings.TrimSpace(c.RulesFile) == "" {
		return nil
	}
	raw, err := os.ReadFile(c.RulesFile)
	if err != nil {
		return fmt.Errorf("rules file %s: %w", c.RulesFile, err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return fmt.Errorf("rules file %s: %w", c.RulesFile, err)
	}
	if len(rf.Windows) > 0 {
		c.TradeWindows = strings.Join(rf.Windows, ",")
	}
	if len(rf.ProtectedSymbols) > 0 {
		c.ProtectedSymbols = rf.ProtectedSymbols
	}
	if rf.MaxTradesPerWindow > 0 {
		c.MaxTradesPerWindow = rf.MaxTradesPerWindow
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
