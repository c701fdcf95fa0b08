// FILE: protected.go
// Package main – Protected-symbol policy (never sell list).
//
// Some tickers are held positions the operator never wants auto-sold. The
// policy blocks Sell-side intents for those symbols; Buy-side is never
// blocked here. The set is fixed at construction.

package main

import "strings"

// ProtectedSymbolPolicy is the immutable never-sell set.
type ProtectedSymbolPolicy struct {
	neverSell map[string]struct{}
}

// NewProtectedSymbolPolicy upper-cases and freezes the symbol list.
func NewProtectedSymbolPolicy(symbols []string) *ProtectedSymbolPolicy {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			set[s] = struct{}{}
		}
	}
	return &ProtectedSymbolPolicy{neverSell: set}
}

// IsBlocked is true iff side is Sell and the symbol is protected.
func (p *ProtectedSymbolPolicy) IsBlocked(symbol string, side OrderSide) bool {
	if side != SideSell {
		return false
	}
	_, hit := p.neverSell[strings.ToUpper(strings.TrimSpace(symbol))]
	return hit
}

// Symbols returns the protected set for banners/logging.
func (p *ProtectedSymbolPolicy) Symbols() []string {
	out := make([]string, 0, len(p.neverSell))
	for s := range p.neverSell {
		out = append(out, s)
	}
	return out
}
