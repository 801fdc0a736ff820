package metrics

import (
	"strings"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

var investedKeywords = []string{
	"brokerage", "stock", "share", "invest", "401k", "401(k)", "ira", "roth",
	"etf", "index fund", "mutual fund", "bond", "crypto", "pension", "retirement", "portfolio",
}

var liquidKeywords = []string{
	"savings", "saving", "checking", "bank", "cash", "hysa", "money market", "deposit", "emergency",
}

func containsAny(s string, words []string) bool {
	s = strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// isLiquidAsset classifies an asset row. Tracked savings rows are always
// liquid; otherwise investment keywords win and anything else is cash-like.
func isLiquidAsset(r domain.Record) bool {
	if r.IsSavings() {
		return true
	}
	label := r.Item + " " + r.Category
	return !containsAny(label, investedKeywords)
}

// isLiquidHolding classifies a holding. Holdings are illiquid unless they are
// named like an account.
func isLiquidHolding(h domain.AssetHolding) bool {
	return containsAny(h.Item, liquidKeywords) && !containsAny(h.Item, investedKeywords)
}

// LiquidityBreakdown splits assets and holdings into liquid and invested totals.
type LiquidityBreakdown struct {
	Liquid   float64 `json:"liquidAmount"`
	Invested float64 `json:"investedAmount"`
}

// Liquidity classifies every asset row and holding of l.
func Liquidity(l domain.Ledger) LiquidityBreakdown {
	var liquid, invested []float64
	for _, r := range l.Assets {
		if isLiquidAsset(r) {
			liquid = append(liquid, r.Amount)
		} else {
			invested = append(invested, r.Amount)
		}
	}
	for _, h := range l.AssetHoldings {
		if isLiquidHolding(h) {
			liquid = append(liquid, h.NetValue())
		} else {
			invested = append(invested, h.NetValue())
		}
	}
	return LiquidityBreakdown{Liquid: sum(liquid...), Invested: sum(invested...)}
}
