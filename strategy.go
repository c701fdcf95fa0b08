// FILE: strategy.go
// Package main – Strategy variants and intent production.
//
// Signal math itself lives behind the SignalFeed collaborator (the sidecar
// computes indicators; this bot only gates and executes). What lives here is
// the closed set of strategy variants, the parameter plumbing, and the
// mapping from a raw signal to an OrderIntent:
//
//   STRATEGY=ema|macd|rsi_mr   selected once at startup
//   STRAT_PARAMS={"fast":9,"slow":21}   JSON overrides per variant
//
// Unknown strategy names are a fatal configuration error — there is no
// silent fallback to a default variant.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StrategyKind tags one of the supported signal variants.
type StrategyKind string

const (
	StrategyEMA   StrategyKind = "ema"    // EMA crossover
	StrategyMACD  StrategyKind = "macd"   // MACD line cross
	StrategyRSIMR StrategyKind = "rsi_mr" // RSI mean reversion
)

// TradeSignal is the black-box feed's answer for one symbol: a directional
// side (empty = stand aside), the current ATR for sizing, and an optional
// reference price.
type TradeSignal struct {
	Side  OrderSide
	ATR   float64
	Price decimal.Decimal
}

// SignalFeed computes signals externally. The paper backend returns "no
// trade" so disconnected runs exercise the loop without fabricating fills.
type SignalFeed interface {
	Signal(ctx context.Context, symbol string, kind StrategyKind, params map[string]float64) (*TradeSignal, error)
}

// IntentProducer is one selected strategy variant bound to its feed, symbol,
// and parameters. Selection happens once at configuration time.
type IntentProducer struct {
	kind   StrategyKind
	params map[string]float64
	symbol string
	feed   SignalFeed
}

// Kind returns the selected variant tag (for banners/logging).
func (p *IntentProducer) Kind() StrategyKind { return p.kind }

// Produce asks the feed for a signal and maps it to an OrderIntent. A nil
// intent with nil error means "no trade this tick". The returned ATR feeds
// the position sizer.
func (p *IntentProducer) Produce(ctx context.Context) (*OrderIntent, float64, error) {
	sig, err := p.feed.Signal(ctx, p.symbol, p.kind, p.params)
	if err != nil {
		return nil, 0, err
	}
	if sig == nil || sig.Side == "" {
		return nil, 0, nil
	}
	return &OrderIntent{
		Symbol: p.symbol,
		Side:   sig.Side,
		Price:  sig.Price,
	}, sig.ATR, nil
}

// defaultParams carries each variant's baseline tuning; STRAT_PARAMS
// overrides individual keys.
func defaultParams(kind StrategyKind) map[string]float64 {
	switch kind {
	case StrategyEMA:
		return map[string]float64{"fast": 9, "slow": 21}
	case StrategyMACD:
		return map[string]float64{"fast": 12, "slow": 26, "signal": 9}
	case StrategyRSIMR:
		return map[string]float64{"period": 14, "low": 30, "high": 70}
	}
	return nil
}

// SelectStrategy resolves the variant named by cfg once, merging JSON param
// overrides over the variant's defaults. The set is closed: anything else is
// a configuration error.
func SelectStrategy(name, rawParams, symbol string, feed SignalFeed) (*IntentProducer, error) {
	kind := StrategyKind(strings.ToLower(strings.TrimSpace(name)))
	params := defaultParams(kind)
	if params == nil {
		return nil, fmt.Errorf("strategy: unknown variant %q (want ema|macd|rsi_mr)", name)
	}
	if strings.TrimSpace(rawParams) != "" {
		var overrides map[string]float64
		if err := json.Unmarshal([]byte(rawParams), &overrides); err != nil {
			return nil, fmt.Errorf("strategy: STRAT_PARAMS: %w", err)
		}
		for k, v := range overrides {
			params[k] = v
		}
	}
	return &IntentProducer{kind: kind, params: params, symbol: symbol, feed: feed}, nil
}

// toTradeSignal normalizes the sidecar's wire shape (see broker_http.go).
func (r signalReply) toTradeSignal() (*TradeSignal, error) {
	sig := &TradeSignal{ATR: r.ATR}
	switch strings.TrimSpace(r.Side) {
	case "":
		return sig, nil
	case string(SideBuy):
		sig.Side = SideBuy
	case string(SideSell):
		sig.Side = SideSell
	default:
		return nil, fmt.Errorf("signal: bad side %q", r.Side)
	}
	if strings.TrimSpace(r.Price) != "" {
		px, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("signal: bad price %q: %w", r.Price, err)
		}
		sig.Price = px
	}
	return sig, nil
}
