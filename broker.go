// FILE: broker.go
// Package main – Broker abstractions shared by all execution backends.
//
// This file defines the minimal interfaces the gate pipeline needs to talk
// to the outside world:
//   • OrderDispatcher    – place/flatten orders (live submit path)
//   • AccountRiskService – account snapshot + broker-side limit check
//   • Liquidator         – flatten-everything collaborator fired on breach
//
// Two concrete backends live in separate files:
//   • broker_paper.go – in-memory paper backend (no external calls)
//   • broker_http.go  – resty client for the real order/account API

package main

import "context"

// OrderDispatcher is the live order-submission surface. Implementations must
// not retry automatically; retries belong to the transport layer behind them.
type OrderDispatcher interface {
	Name() string
	PlaceOrder(ctx context.Context, payload OrderPayload) (*BrokerResponse, error)
	// ClosePosition issues a flattening market order for symbol. Closing an
	// already-flat position is a broker rejection, not a transport fault.
	ClosePosition(ctx context.Context, accountID, symbol string) (*BrokerResponse, error)
}

// AccountRiskService exposes the broker-side account state the gate consults
// in its final evaluation step.
type AccountRiskService interface {
	// Snapshot returns the current account view (equity, positions, flags).
	Snapshot(ctx context.Context) (*Account, error)
	// CheckRiskLimits reports whether broker-side limits are clean. The
	// string slice carries breach descriptions for logging. A transport
	// error means the check could not be completed; the gate treats that
	// conservatively as a denial.
	CheckRiskLimits(ctx context.Context) (bool, []string, error)
}

// Liquidator flattens open positions when limits are breached and
// AUTO_LIQUIDATE is set. Fired as a side effect; never part of the decision.
type Liquidator interface {
	LiquidateAll(ctx context.Context) error
}
