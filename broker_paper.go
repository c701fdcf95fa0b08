// FILE: broker_paper.go
// Package main – In-memory paper backend (no external dependencies).
//
// PaperBroker stands in for the order service, the account service, and the
// signal feed when BROKER_URL is unset. Orders "fill" instantly against an
// in-memory position book, the account always passes risk checks, and the
// signal feed answers "no trade" — disconnected runs exercise the whole loop
// without fabricating market activity.
//
// Implements:
//   • OrderDispatcher    – PlaceOrder / ClosePosition against the book
//   • AccountRiskService – Snapshot / CheckRiskLimits (always clean)
//   • SignalFeed         – Signal (always stand-aside)

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PaperBroker keeps a position book keyed by symbol.
type PaperBroker struct {
	accountID string
	equityUSD float64

	mu        sync.Mutex
	positions map[string]int // signed share count
}

func NewPaperBroker(accountID string, equityUSD float64) *PaperBroker {
	return &PaperBroker{
		accountID: accountID,
		equityUSD: equityUSD,
		positions: make(map[string]int),
	}
}

func (p *PaperBroker) Name() string { return "paper" }

// --- OrderDispatcher ---

// PlaceOrder applies the payload to the book and returns a filled response.
func (p *PaperBroker) PlaceOrder(ctx context.Context, payload OrderPayload) (*BrokerResponse, error) {
	if payload.Quantity <= 0 {
		return nil, fmt.Errorf("paper: quantity must be > 0")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	sym := payload.Instrument.Symbol
	if payload.Instruction == SideBuy {
		p.positions[sym] += payload.Quantity
	} else {
		p.positions[sym] -= payload.Quantity
	}
	return &BrokerResponse{
		OrderID: uuid.New().String(),
		Status:  "FILLED",
	}, nil
}

// ClosePosition flattens symbol; a flat symbol is rejected like the real
// broker would.
func (p *PaperBroker) ClosePosition(ctx context.Context, accountID, symbol string) (*BrokerResponse, error) {
	p.mu.Lock()
	open := p.positions[symbol]
	p.mu.Unlock()
	if open == 0 {
		return nil, fmt.Errorf("paper: close %s: no open position", symbol)
	}
	side := SideSell
	if open < 0 {
		side = SideBuy
	}
	return p.PlaceOrder(ctx, OrderPayload{
		AccountID:   accountID,
		OrderType:   "Market",
		Instrument:  Instrument{Symbol: symbol, AssetType: "EQ"},
		Quantity:    abs(open),
		Instruction: side,
	})
}

// --- AccountRiskService ---

func (p *PaperBroker) Snapshot(ctx context.Context) (*Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	acct := &Account{
		AccountID:      p.accountID,
		EquityUSD:      p.equityUSD,
		BuyingPowerUSD: p.equityUSD,
	}
	for sym, qty := range p.positions {
		if qty != 0 {
			acct.Positions = append(acct.Positions, AccountPosition{Symbol: sym, Quantity: qty})
		}
	}
	return acct, nil
}

// CheckRiskLimits never reports a breach on paper.
func (p *PaperBroker) CheckRiskLimits(ctx context.Context) (bool, []string, error) {
	return true, nil, nil
}

// --- SignalFeed ---

// Signal always stands aside; paper mode has no market data to trade on.
func (p *PaperBroker) Signal(ctx context.Context, symbol string, kind StrategyKind, params map[string]float64) (*TradeSignal, error) {
	return &TradeSignal{}, nil
}
