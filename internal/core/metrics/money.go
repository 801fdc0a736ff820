package metrics

import (
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// sumRecords adds value(r) over rows with decimal arithmetic so that totals
// like 0.1 + 0.2 come out exact.
func sumRecords(rows []domain.Record, value func(domain.Record) float64) float64 {
	acc := decimal.Zero
	for _, r := range rows {
		acc = acc.Add(decimal.NewFromFloat(value(r)))
	}
	f, _ := acc.Float64()
	return f
}

func sum(values ...float64) float64 {
	acc := decimal.Zero
	for _, v := range values {
		acc = acc.Add(decimal.NewFromFloat(v))
	}
	f, _ := acc.Float64()
	return f
}

func sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return f
}

func amountOf(r domain.Record) float64 { return r.Amount }

func minimumOf(r domain.Record) float64 { return r.MinimumPayment }

func limitOf(r domain.Record) float64 { return r.CreditLimit }

// percent is num/den*100, or 0 when den is not positive.
func percent(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TotalHoldingsNet is Σ (assetMarketValue − assetValueOwed) over holdings.
// The sum is signed, so an underwater holding lowers it.
func TotalHoldingsNet(holdings []domain.AssetHolding) float64 {
	acc := decimal.Zero
	for _, h := range holdings {
		acc = acc.Add(decimal.NewFromFloat(h.AssetMarketValue)).Sub(decimal.NewFromFloat(h.AssetValueOwed))
	}
	f, _ := acc.Float64()
	return f
}

// MonthlyDebtMinimums is Σ minimumPayment over debts, credit and loans.
func MonthlyDebtMinimums(l domain.Ledger) float64 {
	return sum(sumRecords(l.Debts, minimumOf), sumRecords(l.Credit, minimumOf), sumRecords(l.Loans, minimumOf))
}

// TotalLiabilities is Σ amount over debts, credit and loans.
func TotalLiabilities(l domain.Ledger) float64 {
	return sum(sumRecords(l.Debts, amountOf), sumRecords(l.Credit, amountOf), sumRecords(l.Loans, amountOf))
}

// TotalAssets is Σ assets.amount plus net asset holdings. Collateral on
// liabilities is not counted.
func TotalAssets(l domain.Ledger) float64 {
	return sum(sumRecords(l.Assets, amountOf), TotalHoldingsNet(l.AssetHoldings))
}
