// FILE: metrics.go
// Package main – Prometheus metrics for observability.
//
// Exposes the metrics the gate pipeline updates during operation:
//   • bot_gate_decisions_total{reason}   – Evaluations by outcome
//                                          (reason: admitted|kill_switch_active|...)
//   • bot_orders_total{mode,side}        – Orders placed (mode: dry_run|live)
//   • bot_orders_rejected_total          – Live submissions the broker refused
//   • bot_auto_liquidations_total        – Auto-liquidate side effects fired
//   • bot_window_keys_evicted_total      – Stale throttle buckets dropped
//   • bot_equity_usd                     – Current equity snapshot (gauge)
//
// These are registered in init() and served by the HTTP handler started in
// main.go at /metrics (Prometheus text exposition format).

package main

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxGateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_gate_decisions_total",
			Help: "Gate evaluations by outcome reason",
		},
		[]string{"reason"},
	)

	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_orders_total",
			Help: "Orders placed",
		},
		[]string{"mode", "side"},
	)

	mtxOrderRejects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_orders_rejected_total",
			Help: "Live order submissions rejected by transport or broker",
		},
	)

	mtxAutoLiquidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_auto_liquidations_total",
			Help: "Auto-liquidation side effects fired on risk breach",
		},
	)

	mtxKeyEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_window_keys_evicted_total",
			Help: "Stale per-window throttle buckets evicted",
		},
	)

	mtxEquity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_equity_usd",
			Help: "Equity in USD",
		},
	)
)

func init() {
	prometheus.MustRegister(mtxGateDecisions, mtxOrders, mtxOrderRejects)
	prometheus.MustRegister(mtxAutoLiquidations, mtxKeyEvictions, mtxEquity)
}

// Helper setters used across files.
func IncGateDecision(reason string)  { mtxGateDecisions.WithLabelValues(reason).Inc() }
func IncOrder(mode, side string)     { mtxOrders.WithLabelValues(mode, side).Inc() }
func IncOrderRejected()              { mtxOrderRejects.Inc() }
func IncAutoLiquidation()            { mtxAutoLiquidations.Inc() }
func IncWindowKeyEvicted()           { mtxKeyEvictions.Inc() }
func SetEquityMetric(v float64)      { mtxEquity.Set(v) }
