package metrics

import (
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
)

// MonthDelta compares one group between the asOf month and the month before.
type MonthDelta struct {
	CurrentMonth  float64 `json:"currentMonth"`
	PreviousMonth float64 `json:"previousMonth"`
	Delta         float64 `json:"delta"`
}

// MonthlyBreakdown is the month-over-month view of dated records.
type MonthlyBreakdown struct {
	CurrentMonth  string     `json:"currentMonthKey"`
	PreviousMonth string     `json:"previousMonthKey"`
	Income        MonthDelta `json:"income"`
	Expenses      MonthDelta `json:"expenses"`
	Assets        MonthDelta `json:"assets"`
	Liabilities   MonthDelta `json:"liabilities"`
	NetWorth      MonthDelta `json:"netWorth"`
}

type monthBuckets struct {
	current, previous domain.Month
}

func newMonthBuckets(asOf time.Time) monthBuckets {
	cur := domain.MonthOf(asOf.UTC())
	return monthBuckets{current: cur, previous: cur.AddDate(0, -1)}
}

// split returns the values dated in the current and previous month.
func (b monthBuckets) split(dates []time.Time, values []float64) (cur, prev float64) {
	var c, p []float64
	for i, d := range dates {
		switch {
		case b.current.Contains(d):
			c = append(c, values[i])
		case b.previous.Contains(d):
			p = append(p, values[i])
		}
	}
	return sum(c...), sum(p...)
}

func (b monthBuckets) records(rows []domain.Record, value func(domain.Record) float64) (cur, prev float64) {
	var dates []time.Time
	var values []float64
	for _, r := range rows {
		d, ok := r.DateValue()
		if !ok {
			continue
		}
		dates = append(dates, d)
		values = append(values, value(r))
	}
	return b.split(dates, values)
}

func newDelta(cur, prev float64) MonthDelta {
	return MonthDelta{CurrentMonth: cur, PreviousMonth: prev, Delta: sub(cur, prev)}
}

// MonthOverMonth buckets dated records into the month of asOf and the month
// before it. Unlike Dashboard, the asset group counts the collateral value of
// dated debts and loans.
func MonthOverMonth(l domain.Ledger, asOf time.Time) (MonthlyBreakdown, error) {
	if err := l.Require(DashboardCollections...); err != nil {
		return MonthlyBreakdown{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return MonthlyBreakdown{}, err
	}

	b := newMonthBuckets(asOf)
	incCur, incPrev := b.records(l.Income, amountOf)
	expCur, expPrev := b.records(l.Expenses, amountOf)

	var liabCur, liabPrev []float64
	for _, c := range domain.LiabilityCollections {
		cur, prev := b.records(l.Records(c), amountOf)
		liabCur = append(liabCur, cur)
		liabPrev = append(liabPrev, prev)
	}

	assetCur, assetPrev := b.records(l.Assets, amountOf)
	var hDates []time.Time
	var hValues []float64
	for _, h := range l.AssetHoldings {
		if d, ok := h.DateValue(); ok {
			hDates = append(hDates, d)
			hValues = append(hValues, h.NetValue())
		}
	}
	holdCur, holdPrev := b.split(hDates, hValues)
	collateral := func(r domain.Record) float64 { return r.CollateralAssetMarketValue }
	debtCollCur, debtCollPrev := b.records(l.Debts, collateral)
	loanCollCur, loanCollPrev := b.records(l.Loans, collateral)

	assets := newDelta(
		sum(assetCur, holdCur, debtCollCur, loanCollCur),
		sum(assetPrev, holdPrev, debtCollPrev, loanCollPrev),
	)
	liabilities := newDelta(sum(liabCur...), sum(liabPrev...))

	return MonthlyBreakdown{
		CurrentMonth:  b.current.String(),
		PreviousMonth: b.previous.String(),
		Income:        newDelta(incCur, incPrev),
		Expenses:      newDelta(expCur, expPrev),
		Assets:        assets,
		Liabilities:   liabilities,
		NetWorth: newDelta(
			sub(assets.CurrentMonth, liabilities.CurrentMonth),
			sub(assets.PreviousMonth, liabilities.PreviousMonth),
		),
	}, nil
}
