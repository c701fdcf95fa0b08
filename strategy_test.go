// FILE: strategy_test.go
// Package main – Strategy selection and intent mapping tests.

package main

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeFeed scripts the sidecar's answer.
type fakeFeed struct {
	sig    *TradeSignal
	err    error
	params map[string]float64
}

func (f *fakeFeed) Signal(ctx context.Context, symbol string, kind StrategyKind, params map[string]float64) (*TradeSignal, error) {
	f.params = params
	return f.sig, f.err
}

func TestSelectStrategyClosedSet(t *testing.T) {
	feed := &fakeFeed{}
	for name, want := range map[string]StrategyKind{
		"ema":      StrategyEMA,
		"MACD":     StrategyMACD,
		" rsi_mr ": StrategyRSIMR,
	} {
		p, err := SelectStrategy(name, "", "AAPL", feed)
		require.NoError(t, err)
		require.Equal(t, want, p.Kind())
	}

	_, err := SelectStrategy("bollinger", "", "AAPL", feed)
	require.Error(t, err, "unknown variants are a configuration error, not a fallback")
}

func TestSelectStrategyParamMerge(t *testing.T) {
	feed := &fakeFeed{sig: &TradeSignal{Side: SideBuy, ATR: 1.0}}
	p, err := SelectStrategy("ema", `{"fast": 5}`, "AAPL", feed)
	require.NoError(t, err)

	_, _, err = p.Produce(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 5.0, feed.params["fast"], 1e-9, "override replaces the default")
	require.InDelta(t, 21.0, feed.params["slow"], 1e-9, "untouched keys keep their defaults")
}

func TestSelectStrategyBadParamsJSON(t *testing.T) {
	_, err := SelectStrategy("ema", `{"fast":`, "AAPL", &fakeFeed{})
	require.Error(t, err)
}

func TestProduceMapsSignalToIntent(t *testing.T) {
	px := decimal.RequireFromString("189.30")
	feed := &fakeFeed{sig: &TradeSignal{Side: SideSell, ATR: 2.5, Price: px}}
	p, err := SelectStrategy("macd", "", "AAPL", feed)
	require.NoError(t, err)

	intent, atr, err := p.Produce(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AAPL", intent.Symbol)
	require.Equal(t, SideSell, intent.Side)
	require.Equal(t, 0, intent.Quantity, "the feed never hints a size; the sizer decides")
	require.True(t, px.Equal(intent.Price))
	require.InDelta(t, 2.5, atr, 1e-9)
}

func TestProduceStandAside(t *testing.T) {
	feed := &fakeFeed{sig: &TradeSignal{}}
	p, err := SelectStrategy("ema", "", "AAPL", feed)
	require.NoError(t, err)

	intent, atr, err := p.Produce(context.Background())
	require.NoError(t, err)
	require.Nil(t, intent)
	require.Zero(t, atr)
}

func TestSignalReplyParsing(t *testing.T) {
	sig, err := signalReply{Side: "Buy", ATR: 2.0, Price: "101.25"}.toTradeSignal()
	require.NoError(t, err)
	require.Equal(t, SideBuy, sig.Side)
	require.Equal(t, "101.25", sig.Price.String())

	sig, err = signalReply{}.toTradeSignal()
	require.NoError(t, err)
	require.Empty(t, sig.Side)

	_, err = signalReply{Side: "hold"}.toTradeSignal()
	require.Error(t, err)

	_, err = signalReply{Side: "Buy", Price: "not-a-number"}.toTradeSignal()
	require.Error(t, err)
}
