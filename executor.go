// FILE: executor.go
// Package main – Order construction and dispatch (dry-run or live).
//
// OrderExecutor turns a SizedOrder into the broker payload and either
// simulates it (dry-run: no network, deterministic for identical input) or
// hands it to the OrderDispatcher. Transport/validation failures come back
// as a rejected OrderResult with the error attached, never swallowed.
//
// Close(symbol) flattens a position through the same dispatch path and
// honors dry-run exactly like Submit: a simulated close never reaches the
// dispatcher. It is idempotent from the caller's perspective: closing an
// already-flat position is a broker rejection, not a fault here.

package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// OrderExecutor builds and dispatches equity market orders for one account.
type OrderExecutor struct {
	accountID  string
	dispatcher OrderDispatcher
}

func NewOrderExecutor(accountID string, dispatcher OrderDispatcher) *OrderExecutor {
	return &OrderExecutor{accountID: accountID, dispatcher: dispatcher}
}

// BuildPayload maps a SizedOrder onto the broker's order body. Pure; the
// dry-run path depends on this staying free of clocks, randomness, and I/O.
func (e *OrderExecutor) BuildPayload(so SizedOrder) OrderPayload {
	return OrderPayload{
		AccountID:   e.accountID,
		OrderType:   "Market",
		Instrument:  Instrument{Symbol: so.Symbol, AssetType: "EQ"},
		Quantity:    abs(so.ResolvedQty),
		Instruction: so.Side,
	}
}

// Submit executes the sized order. dryRun builds the payload and stops;
// otherwise the order goes to the dispatcher and the broker's answer (or the
// transport error) is attached to the result.
func (e *OrderExecutor) Submit(ctx context.Context, so SizedOrder, dryRun bool) OrderResult {
	payload := e.BuildPayload(so)
	if payload.Quantity <= 0 {
		return OrderResult{
			Status:  StatusRejected,
			Payload: payload,
			Err:     fmt.Errorf("quantity must be > 0, got %d", so.ResolvedQty),
		}
	}

	if dryRun {
		logrus.Infof("[DRY_RUN] simulated order: %+v", payload)
		IncOrder("dry_run", string(so.Side))
		return OrderResult{Status: StatusSimulated, Payload: payload}
	}

	logrus.Infof("[ORDER] placing market order: %+v", payload)
	resp, err := e.dispatcher.PlaceOrder(ctx, payload)
	if err != nil {
		logrus.Errorf("[ORDER] placement failed: %v", err)
		IncOrderRejected()
		return OrderResult{Status: StatusRejected, Payload: payload, Err: err}
	}
	IncOrder("live", string(so.Side))
	return OrderResult{Status: StatusSubmitted, Payload: payload, BrokerResponse: resp}
}

// Close issues a flattening instruction for symbol through the dispatcher.
// dryRun simulates the close without touching the dispatcher, so a
// simulating process never transmits real liquidation orders.
func (e *OrderExecutor) Close(ctx context.Context, symbol string, dryRun bool) OrderResult {
	if dryRun {
		logrus.Infof("[DRY_RUN] simulated close: %s", symbol)
		return OrderResult{Status: StatusSimulated}
	}
	logrus.Infof("[ORDER] closing position: %s", symbol)
	resp, err := e.dispatcher.ClosePosition(ctx, e.accountID, symbol)
	if err != nil {
		logrus.Warnf("[ORDER] close %s rejected: %v", symbol, err)
		return OrderResult{Status: StatusRejected, Err: err}
	}
	return OrderResult{Status: StatusSubmitted, BrokerResponse: resp}
}
