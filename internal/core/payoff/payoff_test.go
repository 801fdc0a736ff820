package payoff_test

import (
	"testing"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/payoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePayoffMonths(t *testing.T) {
	tests := []struct {
		name                   string
		balance, payment, rate float64
		want                   int
	}{
		{"amortized", 10000, 300, 12, 41},
		{"zero rate", 1000, 300, 0, 4},
		{"exact zero rate", 900, 300, 0, 3},
		{"nothing owed", 0, 50, 18, 0},
		{"single payment", 100, 500, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := payoff.EstimatePayoffMonths(tt.balance, tt.payment, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimatePayoffMonths_Validation(t *testing.T) {
	tests := []struct {
		name                   string
		balance, payment, rate float64
		field                  string
	}{
		{"negative payment", 10000, -1, 12, "payment"},
		{"zero payment", 10000, 0, 12, "payment"},
		{"zero payment on zero balance", 0, 0, 5, "payment"},
		{"interest only", 10000, 100, 12, "payment"},
		{"negative balance", -5, 100, 12, "balance"},
		{"negative rate", 100, 10, -1, "interestRatePercent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := payoff.EstimatePayoffMonths(tt.balance, tt.payment, tt.rate)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
		})
	}
}

func TestSimulateSchedule_MatchesClosedForm(t *testing.T) {
	s, err := payoff.SimulateSchedule(10000, 300, 12)
	require.NoError(t, err)
	assert.Equal(t, 41, s.Months)
	assert.Greater(t, s.TotalInterest, 0.0)
	assert.InDelta(t, 10000+s.TotalInterest, s.TotalPaid, 0.001)

	s, err = payoff.SimulateSchedule(1200, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Months)
	assert.Zero(t, s.TotalInterest)
}

func TestComparePayoff(t *testing.T) {
	c, err := payoff.ComparePayoff(10000, 300, 100, 12)
	require.NoError(t, err)
	assert.Equal(t, 41, c.BaseMonths)
	assert.Equal(t, 29, c.AcceleratedMonths)
	assert.Equal(t, 12, c.MonthsSaved)
	assert.Greater(t, c.InterestSaved, 0.0)

	_, err = payoff.ComparePayoff(10000, -1, 100, 12)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = payoff.ComparePayoff(0, 0, 0, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = payoff.ComparePayoff(10000, 300, -5, 12)
	assert.Equal(t, "extraPayment", apperrors.FieldOf(err))
}

func TestComparePayoff_Monotonic(t *testing.T) {
	for _, extra := range []float64{0, 1, 25, 250, 5000} {
		for _, rate := range []float64{0, 5, 19.99, 29} {
			c, err := payoff.ComparePayoff(8000, 250, extra, rate)
			require.NoError(t, err)
			assert.LessOrEqual(t, c.AcceleratedMonths, c.BaseMonths)
			assert.GreaterOrEqual(t, c.InterestSaved, 0.0)
		}
	}
}

func TestRecommendCardPayments_Avalanche(t *testing.T) {
	l := domain.Ledger{
		Income:   []domain.Record{{Amount: 8000}},
		Expenses: []domain.Record{{Amount: 4500}},
		Debts:    []domain.Record{{Amount: 15000, MinimumPayment: 500}},
		Loans:    []domain.Record{{Amount: 5000, MinimumPayment: 200}},
	}
	cards := []domain.CreditCard{
		{ID: "b", Item: "CardBeta", CurrentBalance: 740, MaxCapacity: 2900, MinimumPayment: 95, MonthlyPayment: 180, InterestRatePercent: 21.7},
		{ID: "a", Item: "CardAlpha", CurrentBalance: 2450, MaxCapacity: 7100, MinimumPayment: 210, MonthlyPayment: 420, InterestRatePercent: 26.1},
	}

	plan, err := payoff.RecommendCardPayments(l, cards)
	require.NoError(t, err)
	assert.Contains(t, plan.Strategy, "avalanche")
	require.Len(t, plan.Rows, 2)

	beta, alpha := plan.Rows[0], plan.Rows[1]
	assert.Equal(t, "b", beta.ID)
	assert.Equal(t, 1, alpha.PriorityRank)
	assert.Equal(t, 2, beta.PriorityRank)
	assert.Equal(t, 2200.0, plan.AvailableExtraPool)
	assert.Equal(t, 2030.0, alpha.ExtraPayment)
	assert.Equal(t, 2450.0, alpha.RecommendedMonthlyPayment)
	assert.Equal(t, 170.0, beta.ExtraPayment)
	assert.Less(t, alpha.RecommendedPayoffMonths, alpha.CurrentPayoffMonths)

	assert.Equal(t, 600.0, plan.CurrentTotalMonthlyPayment)
	assert.GreaterOrEqual(t, plan.RecommendedTotalMonthlyPayment, plan.CurrentTotalMonthlyPayment)
	assert.LessOrEqual(t, plan.WeightedPayoffMonthsRecommended, plan.WeightedPayoffMonthsCurrent)
}

func TestRecommendCardPayments_NoSurplus(t *testing.T) {
	l := domain.Ledger{Income: []domain.Record{{Amount: 1000}}, Expenses: []domain.Record{{Amount: 2000}}}
	cards := []domain.CreditCard{{CurrentBalance: 5000, MinimumPayment: 50, InterestRatePercent: 30}}

	plan, err := payoff.RecommendCardPayments(l, cards)
	require.NoError(t, err)
	assert.Zero(t, plan.AvailableExtraPool)
	assert.Equal(t, plan.CurrentTotalMonthlyPayment, plan.RecommendedTotalMonthlyPayment)
	assert.Equal(t, 600, plan.Rows[0].CurrentPayoffMonths)
}

func TestRecommendCardPayments_PaidOffCard(t *testing.T) {
	l := domain.Ledger{Income: []domain.Record{{Amount: 1000}}, Expenses: []domain.Record{{Amount: 2000}}}
	cards := []domain.CreditCard{{ID: "z", CurrentBalance: 0, InterestRatePercent: 19}}

	plan, err := payoff.RecommendCardPayments(l, cards)
	require.NoError(t, err)
	require.Len(t, plan.Rows, 1)
	assert.Zero(t, plan.Rows[0].CurrentPayoffMonths)
	assert.Zero(t, plan.Rows[0].RecommendedPayoffMonths)
}

func TestRecommendCardPayments_Validation(t *testing.T) {
	_, err := payoff.RecommendCardPayments(domain.Ledger{Income: []domain.Record{}}, []domain.CreditCard{})
	assert.Equal(t, "expenses", apperrors.FieldOf(err))

	l := domain.NewLedger()
	_, err = payoff.RecommendCardPayments(l, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = payoff.RecommendCardPayments(l, []domain.CreditCard{{CurrentBalance: -1}})
	assert.Equal(t, "creditCards[0].currentBalance", apperrors.FieldOf(err))
}

func TestProjectNetWorth_ShapeOnDefaultLedger(t *testing.T) {
	p, err := payoff.ProjectNetWorth(domain.NewLedger())
	require.NoError(t, err)
	require.Len(t, p.Profiles, 3)
	require.Len(t, p.Horizons, 6)
	assert.Equal(t, "10-years", p.Horizons[5].ID)
	for _, prof := range p.Profiles {
		require.Len(t, prof.Points, 6)
		for i, pt := range prof.Points {
			assert.Equal(t, p.Horizons[i].ID, pt.HorizonID)
			assert.Zero(t, pt.ProjectedDebt)
		}
	}
}

func TestProjectNetWorth_ProfilesDiverge(t *testing.T) {
	l := domain.NewLedger()
	l.Income = []domain.Record{{Amount: 6000}}
	l.Expenses = []domain.Record{{Amount: 3500}}
	l.Assets = []domain.Record{{Amount: 10000}}
	l.Loans = []domain.Record{{Amount: 12000, MinimumPayment: 400, InterestRatePercent: 6}}

	p, err := payoff.ProjectNetWorth(l)
	require.NoError(t, err)

	conservative, _ := p.Profile(payoff.ProfileConservative)
	aggressive, _ := p.Profile(payoff.ProfileAggressive)
	c10, _ := conservative.Point("10-years")
	a10, _ := aggressive.Point("10-years")
	assert.Greater(t, a10.ProjectedNetWorth, c10.ProjectedNetWorth)
	assert.Zero(t, a10.ProjectedDebt)

	first, _ := aggressive.Point("6-months")
	assert.Less(t, first.ProjectedDebt, 12000.0)
}

func TestProjectNetWorth_DeficitTurnsIntoDebt(t *testing.T) {
	l := domain.NewLedger()
	l.Income = []domain.Record{{Amount: 1000}}
	l.Expenses = []domain.Record{{Amount: 1500}}
	l.Assets = []domain.Record{{Amount: 1000}}

	p, err := payoff.ProjectNetWorth(l)
	require.NoError(t, err)
	moderate, _ := p.Profile(payoff.ProfileModerate)
	year, _ := moderate.Point("1-year")
	assert.Zero(t, year.ProjectedAssets)
	assert.Greater(t, year.ProjectedDebt, 0.0)
	assert.Less(t, year.ProjectedNetWorth, 0.0)
}

func TestProjectNetWorth_Malformed(t *testing.T) {
	_, err := payoff.ProjectNetWorth(domain.Ledger{Income: []domain.Record{}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
