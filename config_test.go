// FILE: config_test.go
// Package main – Env loading, limit snapshots, and rules-file overlay tests.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"ACCOUNT_ID", "SYMBOL", "KILL_SWITCH", "MAX_POS_SIZE", "DRY_RUN",
		"MARKET_TZ", "TRADE_WINDOWS", "MAX_TRADES_PER_WINDOW",
		"PROTECTED_SYMBOLS", "USD_EQUITY", "RISK_PER_TRADE", "STOP_ATR_MULT",
		"STRATEGY", "PORT", "RULES_FILE",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg := loadConfigFromEnv()
	require.True(t, cfg.DryRun, "dry run is the default; live trading is opt-in")
	require.False(t, cfg.KillSwitch)
	require.Equal(t, 100, cfg.MaxPosSize)
	require.Equal(t, "America/Los_Angeles", cfg.MarketTZ)
	require.Equal(t, "06:30-07:30,12:00-13:00", cfg.TradeWindows)
	require.Equal(t, 2, cfg.MaxTradesPerWindow)
	require.Equal(t, []string{"CWH"}, cfg.ProtectedSymbols)
	require.InDelta(t, 100000.0, cfg.USDEquity, 1e-9)
	require.InDelta(t, 0.01, cfg.RiskPerTrade, 1e-9)
	require.InDelta(t, 1.5, cfg.StopATRMult, 1e-9)
	require.Equal(t, "ema", cfg.Strategy)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("KILL_SWITCH", "true")
	t.Setenv("MAX_POS_SIZE", "250")
	t.Setenv("DRY_RUN", "false")
	t.Setenv("PROTECTED_SYMBOLS", " CWH , BRK.B ,")
	t.Setenv("RISK_PER_TRADE", "0.02")

	cfg := loadConfigFromEnv()
	require.True(t, cfg.KillSwitch)
	require.Equal(t, 250, cfg.MaxPosSize)
	require.False(t, cfg.DryRun)
	require.Equal(t, []string{"CWH", "BRK.B"}, cfg.ProtectedSymbols)
	require.InDelta(t, 0.02, cfg.RiskPerTrade, 1e-9)
}

func TestLimitsEnvWinsOverBootValues(t *testing.T) {
	t.Setenv("KILL_SWITCH", "")
	require.NoError(t, os.Unsetenv("KILL_SWITCH"))
	cfg := loadConfigFromEnv()
	require.False(t, cfg.Limits().KillSwitch)

	// Flipping the env after boot shows up in the next snapshot without a
	// reload; the struct keeps its boot-time value.
	t.Setenv("KILL_SWITCH", "true")
	require.True(t, cfg.Limits().KillSwitch)
	require.False(t, cfg.KillSwitch)

	t.Setenv("MAX_POS_SIZE", "7")
	require.Equal(t, 7, cfg.Limits().MaxPosSize)
}

func TestApplyRulesFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
windows:
  - "09:00-10:00"
protected_symbols: [CWH, GME]
max_trades_per_window: 5
`), 0o644))

	cfg := loadConfigFromEnv()
	cfg.RulesFile = path
	require.NoError(t, cfg.applyRulesFile())
	require.Equal(t, "09:00-10:00", cfg.TradeWindows)
	require.Equal(t, []string{"CWH", "GME"}, cfg.ProtectedSymbols)
	require.Equal(t, 5, cfg.MaxTradesPerWindow)
}

func TestApplyRulesFilePartialOverlayKeepsEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_trades_per_window: 3\n"), 0o644))

	cfg := loadConfigFromEnv()
	before := cfg.TradeWindows
	cfg.RulesFile = path
	require.NoError(t, cfg.applyRulesFile())
	require.Equal(t, before, cfg.TradeWindows, "absent keys keep the env values")
	require.Equal(t, 3, cfg.MaxTradesPerWindow)
}

func TestApplyRulesFileMissingIsHardError(t *testing.T) {
	cfg := loadConfigFromEnv()
	cfg.RulesFile = filepath.Join(t.TempDir(), "nope.yaml")
	require.Error(t, cfg.applyRulesFile(), "gating rules must never silently fall back")
}

func TestApplyRulesFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("windows: [unterminated\n"), 0o644))

	cfg := loadConfigFromEnv()
	cfg.RulesFile = path
	require.Error(t, cfg.applyRulesFile())
}
