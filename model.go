// FILE: model.go
// Package main – Shared data model for intents, orders, and accounts.
//
// This file declares the types that flow through the gate pipeline:
//   • OrderSide / OrderIntent  – what a strategy wants to do
//   • SizedOrder               – intent plus a resolved quantity and risk budget
//   • OrderPayload             – the exact JSON body the broker accepts
//   • OrderResult              – terminal outcome (simulated|submitted|rejected)
//   • Account / BrokerResponse – broker-side views used by risk checks
//
// OrderResult is never mutated after creation; denials from the gate are a
// (bool, reason) pair and do not use these types at all.

package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSide is the side of a trade. Values match the broker API's
// "instruction" field verbatim.
type OrderSide string

const (
	SideBuy  OrderSide = "Buy"
	SideSell OrderSide = "Sell"
)

// OrderIntent is what a strategy asks for before any risk check.
// Quantity == 0 means "no hint, let the sizer decide". Price is an optional
// reference price (zero value = none); market orders never send it.
type OrderIntent struct {
	Symbol   string
	Side     OrderSide
	Quantity int
	Price    decimal.Decimal
}

// SizedOrder is an OrderIntent with a resolved, sign-free quantity and the
// dollar risk amount that produced it. Direction is carried by Side only.
// ResolvedQty is distinct from the intent's Quantity hint, which may be
// signed or absent.
type SizedOrder struct {
	OrderIntent
	ResolvedQty int
	RiskUSD     float64
}

// Instrument identifies the traded asset in the broker payload.
type Instrument struct {
	Symbol    string `json:"symbol"`
	AssetType string `json:"assetType"`
}

// OrderPayload is the body of POST /v1/accounts/{accountId}/orders.
type OrderPayload struct {
	AccountID   string     `json:"accountId"`
	OrderType   string     `json:"orderType"`
	Instrument  Instrument `json:"instrument"`
	Quantity    int        `json:"quantity"`
	Instruction OrderSide  `json:"instruction"`
}

// OrderStatus is the terminal state of a submission attempt.
type OrderStatus string

const (
	StatusSimulated OrderStatus = "simulated"
	StatusSubmitted OrderStatus = "submitted"
	StatusRejected  OrderStatus = "rejected"
)

// BrokerResponse is the normalized broker reply to an order placement.
type BrokerResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OrderResult is the terminal outcome of OrderExecutor.Submit/Close.
// Err carries the transport/validation detail when Status is rejected.
type OrderResult struct {
	Status         OrderStatus
	Payload        OrderPayload
	BrokerResponse *BrokerResponse
	Err            error
}

// AccountPosition is one open position in the account snapshot.
type AccountPosition struct {
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"` // signed: >0 long, <0 short
}

// Account is the snapshot returned by GET /v1/accounts/{accountId}.
type Account struct {
	AccountID      string            `json:"accountId"`
	EquityUSD      float64           `json:"equity"`
	BuyingPowerUSD float64           `json:"buyingPower"`
	InCall         bool              `json:"isInCall"`
	Violations     []string          `json:"violations,omitempty"`
	Positions      []AccountPosition `json:"positions,omitempty"`
}

// Candle is the normalized OHLCV row used by the volatility helpers.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
