// FILE: broker_http.go
// Package main – HTTP backend for orders, account state, and signals.
//
// HTTPBroker fronts the real account/order API with a resty client:
//   • PlaceOrder:      POST /v1/accounts/{accountId}/orders
//   • Snapshot:        GET  /v1/accounts/{accountId}
//   • CheckRiskLimits: derived from the snapshot (margin call flag,
//                      negative buying power, reported violations)
//   • ClosePosition:   snapshot → opposite-side market order for the full
//                      open quantity; flat symbol -> rejection
//   • Signal:          GET /v1/signals/{symbol} from the signal sidecar
//
// There are NO automatic retries on the order path; a failed placement is
// reported once and the caller decides. All calls honor the client timeout.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPBroker talks to the order/account service and the signal sidecar.
type HTTPBroker struct {
	rc        *resty.Client
	accountID string
}

// NewHTTPBroker builds a client for base (e.g. "https://api.broker.example")
// with a hard per-request timeout.
func NewHTTPBroker(base, accountID string, timeout time.Duration) *HTTPBroker {
	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("User-Agent", "schwabbot/1.0").
		SetHeader("Content-Type", "application/json")
	return &HTTPBroker{rc: rc, accountID: accountID}
}

func (b *HTTPBroker) Name() string { return "http" }

// --- OrderDispatcher ---

func (b *HTTPBroker) PlaceOrder(ctx context.Context, payload OrderPayload) (*BrokerResponse, error) {
	var out BrokerResponse
	resp, err := b.rc.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post(fmt.Sprintf("/v1/accounts/%s/orders", payload.AccountID))
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("place order: %d: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// ClosePosition flattens symbol with an opposite-side market order sized to
// the full open quantity from the account snapshot. A flat symbol yields an
// error the executor reports as a rejection, matching how the broker itself
// answers a redundant close.
func (b *HTTPBroker) ClosePosition(ctx context.Context, accountID, symbol string) (*BrokerResponse, error) {
	acct, err := b.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("close %s: %w", symbol, err)
	}
	var open int
	for _, p := range acct.Positions {
		if p.Symbol == symbol {
			open = p.Quantity
			break
		}
	}
	if open == 0 {
		return nil, fmt.Errorf("close %s: no open position", symbol)
	}
	side := SideSell
	if open < 0 {
		side = SideBuy
	}
	return b.PlaceOrder(ctx, OrderPayload{
		AccountID:   accountID,
		OrderType:   "Market",
		Instrument:  Instrument{Symbol: symbol, AssetType: "EQ"},
		Quantity:    abs(open),
		Instruction: side,
	})
}

// --- AccountRiskService ---

func (b *HTTPBroker) Snapshot(ctx context.Context) (*Account, error) {
	var out Account
	resp, err := b.rc.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/v1/accounts/%s", b.accountID))
	if err != nil {
		return nil, fmt.Errorf("account snapshot: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("account snapshot: %d: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// CheckRiskLimits derives limit breaches from the account snapshot.
func (b *HTTPBroker) CheckRiskLimits(ctx context.Context) (bool, []string, error) {
	acct, err := b.Snapshot(ctx)
	if err != nil {
		return false, nil, err
	}
	var breaches []string
	if acct.InCall {
		breaches = append(breaches, "margin_call")
	}
	if acct.BuyingPowerUSD < 0 {
		breaches = append(breaches, "negative_buying_power")
	}
	breaches = append(breaches, acct.Violations...)
	return len(breaches) == 0, breaches, nil
}

// --- SignalFeed ---

// signalReply is the sidecar's answer; side is empty for "no trade".
type signalReply struct {
	Side  string  `json:"side"`
	ATR   float64 `json:"atr"`
	Price string  `json:"price"`
}

func (b *HTTPBroker) Signal(ctx context.Context, symbol string, kind StrategyKind, params map[string]float64) (*TradeSignal, error) {
	var out signalReply
	req := b.rc.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("strategy", string(kind))
	for k, v := range params {
		req.SetQueryParam(k, fmt.Sprintf("%g", v))
	}
	resp, err := req.Get(fmt.Sprintf("/v1/signals/%s", symbol))
	if err != nil {
		return nil, fmt.Errorf("signal %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("signal %s: %d: %s", symbol, resp.StatusCode(), resp.String())
	}
	return out.toTradeSignal()
}
