package metrics_test

import (
	"math"
	"testing"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

func amounts(values ...float64) []domain.Record {
	rows := make([]domain.Record, len(values))
	for i, v := range values {
		rows[i] = domain.Record{Amount: v}
	}
	return rows
}

func baseLedger() domain.Ledger {
	return domain.Ledger{
		Income:   amounts(5000),
		Expenses: amounts(3000),
		Assets:   amounts(10000),
		Debts:    []domain.Record{{Amount: 4000, CollateralAssetMarketValue: 25000}},
		Credit:   []domain.Record{{Amount: 500, CreditLimit: 2000}},
		Loans:    []domain.Record{{Amount: 2000, CollateralAssetMarketValue: 12000}},
		Goals:    []domain.Goal{},
	}
}

func TestDashboard_ReturnsTwentyNamedMetrics(t *testing.T) {
	l := baseLedger()
	l.Assets = amounts(20000)
	l.Goals = []domain.Goal{{TargetAmount: 10000, CurrentAmount: 5000}}

	m, err := metrics.Dashboard(l)
	require.NoError(t, err)

	values := m.AsMap()
	assert.Len(t, values, 20)
	assert.Len(t, metrics.Names(), 20)
	for _, name := range []string{"netWorth", "creditUtilizationPercent", "goalProgressScorePercent"} {
		assert.Contains(t, values, name)
	}
	assert.Equal(t, 2000.0, m.MonthlySurplusDeficit)
	assert.Equal(t, 40.0, m.SavingsRatePercent)
	assert.Equal(t, 25.0, m.CreditUtilizationPercent)
	assert.Equal(t, 1500.0, m.AvailableCredit)
	assert.Equal(t, 50.0, m.GoalProgressScorePercent)

	v, ok := m.Value("netWorth")
	assert.True(t, ok)
	assert.Equal(t, m.NetWorth, v)
	_, ok = m.Value("unknown")
	assert.False(t, ok)
}

func TestDashboard_ExcludesCollateralFromAssets(t *testing.T) {
	m, err := metrics.Dashboard(baseLedger())
	require.NoError(t, err)
	assert.Equal(t, 10000.0, m.TotalAssets)
	assert.Equal(t, 6500.0, m.TotalLiabilities)
	assert.Equal(t, 3500.0, m.NetWorth)
}

func TestDashboard_IncludesHoldingsNetValue(t *testing.T) {
	l := baseLedger()
	l.Debts = amounts(4000)
	l.Loans = amounts(2000)
	l.AssetHoldings = []domain.AssetHolding{{AssetMarketValue: 120000, AssetValueOwed: 90000}}

	m, err := metrics.Dashboard(l)
	require.NoError(t, err)
	assert.Equal(t, 40000.0, m.TotalAssets)
	assert.Equal(t, 6500.0, m.TotalLiabilities)
	assert.Equal(t, 33500.0, m.NetWorth)
}

func TestDashboard_UnderwaterHoldingLowersAssets(t *testing.T) {
	l := baseLedger()
	l.AssetHoldings = []domain.AssetHolding{{Item: "Boat", AssetMarketValue: 100000, AssetValueOwed: 130000}}

	m, err := metrics.Dashboard(l)
	require.NoError(t, err)
	assert.Equal(t, -20000.0, m.TotalAssets)
	assert.Equal(t, m.TotalAssets-m.TotalLiabilities, m.NetWorth)
	assert.Zero(t, m.DebtToAssetRatioPercent)
}

func TestDashboard_SumsExactly(t *testing.T) {
	l := baseLedger()
	l.Income = amounts(0.1, 0.2)
	l.Expenses = amounts()

	m, err := metrics.Dashboard(l)
	require.NoError(t, err)
	assert.Equal(t, 0.3, m.TotalIncome)
	assert.Equal(t, m.TotalAssets-m.TotalLiabilities, m.NetWorth)
}

func TestDashboard_GoalProgressIsClamped(t *testing.T) {
	l := baseLedger()
	l.Goals = []domain.Goal{
		{TargetAmount: 100, CurrentAmount: 500, Status: domain.GoalCompleted},
		{TargetAmount: 100, CurrentAmount: 100, Status: domain.GoalCompleted},
	}
	m, err := metrics.Dashboard(l)
	require.NoError(t, err)
	assert.Equal(t, 100.0, m.GoalProgressScorePercent)
	assert.Equal(t, 100.0, m.GoalsCompletedPercent)
}

func TestDashboard_ValidationErrors(t *testing.T) {
	_, err := metrics.Dashboard(domain.Ledger{Income: amounts(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "expenses", apperrors.FieldOf(err))

	l := baseLedger()
	l.Income = amounts(math.NaN())
	_, err = metrics.Dashboard(l)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "income[0].amount", apperrors.FieldOf(err))
}

func TestMonthOverMonth_DatedDeltas(t *testing.T) {
	l := domain.Ledger{
		Income:   []domain.Record{{Amount: 3000, Date: "2026-02-10"}, {Amount: 2500, Date: "2026-01-15"}},
		Expenses: []domain.Record{{Amount: 1200, Date: "2026-02-04"}, {Amount: 800, Date: "2026-01-20"}},
		Assets:   []domain.Record{{Amount: 10000, Date: "2026-02-02"}, {Amount: 9000, Date: "2026-01-02"}},
		Debts:    []domain.Record{{Amount: 1500, Date: "2026-02-06"}, {Amount: 1400, Date: "2026-01-06"}},
		Credit:   []domain.Record{{Amount: 400, Date: "2026-02-08"}, {Amount: 300, Date: "2026-01-08"}},
		Loans:    []domain.Record{{Amount: 2000, Date: "2026-02-09"}, {Amount: 1900, Date: "2026-01-09"}},
	}

	b, err := metrics.MonthOverMonth(l, asOf)
	require.NoError(t, err)
	assert.Equal(t, "2026-02", b.CurrentMonth)
	assert.Equal(t, "2026-01", b.PreviousMonth)
	assert.Equal(t, metrics.MonthDelta{CurrentMonth: 3000, PreviousMonth: 2500, Delta: 500}, b.Income)
	assert.Equal(t, 3900.0, b.Liabilities.CurrentMonth)
	assert.Equal(t, 3600.0, b.Liabilities.PreviousMonth)
	assert.Equal(t, 6100.0, b.NetWorth.CurrentMonth)
	assert.Equal(t, 5400.0, b.NetWorth.PreviousMonth)
}

func TestMonthOverMonth_CountsDatedCollateral(t *testing.T) {
	l := domain.Ledger{
		Income:   []domain.Record{{Amount: 3000, Date: "2026-02-10"}},
		Expenses: []domain.Record{{Amount: 1200, Date: "2026-02-04"}},
		Assets:   []domain.Record{{Amount: 10000, Date: "2026-02-02"}},
		Debts:    []domain.Record{{Amount: 1500, CollateralAssetMarketValue: 250000, Date: "2026-02-06"}},
		Credit:   []domain.Record{{Amount: 400, Date: "2026-02-08"}},
		Loans:    []domain.Record{{Amount: 2000, CollateralAssetMarketValue: 26000, Date: "2026-02-09"}},
	}

	b, err := metrics.MonthOverMonth(l, asOf)
	require.NoError(t, err)
	assert.Equal(t, 286000.0, b.Assets.CurrentMonth)
	assert.Equal(t, 3900.0, b.Liabilities.CurrentMonth)
	assert.Equal(t, 282100.0, b.NetWorth.CurrentMonth)
}

func TestMonthOverMonth_MalformedLedger(t *testing.T) {
	_, err := metrics.MonthOverMonth(domain.Ledger{Income: []domain.Record{}}, asOf)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func datapointLedger() domain.Ledger {
	return domain.Ledger{
		Income:   []domain.Record{{Amount: 4000, Date: "2026-02-01"}},
		Expenses: []domain.Record{{Amount: 2000, Date: "2026-02-01"}},
		Assets:   []domain.Record{{Amount: 12000, Date: "2026-02-01"}},
		Debts:    []domain.Record{{Amount: 3000, MinimumPayment: 300, CollateralAssetMarketValue: 5000, Date: "2026-02-01"}},
		Credit:   []domain.Record{{Amount: 500, CreditLimit: 2500, MinimumPayment: 50, Date: "2026-02-01"}},
		Loans:    []domain.Record{{Amount: 6000, MinimumPayment: 200, Date: "2026-02-01"}},
		Goals: []domain.Goal{
			{Title: "Travel Japan", TargetAmount: 2000, CurrentAmount: 2000},
			{Title: "Emergency Buffer", TargetAmount: 5000, CurrentAmount: 1000},
			{Title: "Travel Italy", TargetAmount: 3000},
		},
	}
}

func rowByMetric(rows []metrics.DatapointRow, name string) (metrics.DatapointRow, bool) {
	for _, r := range rows {
		if r.Metric == name {
			return r, true
		}
	}
	return metrics.DatapointRow{}, false
}

func TestDatapointRows_ListsRequestedMetrics(t *testing.T) {
	rows, err := metrics.DatapointRows(datapointLedger(), asOf)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(rows), 19)

	for _, name := range []string{"Credit Card Capacity", "Debt to Income Ratio", "Savings Rate", "Secured Debt Loan-To-Value"} {
		_, ok := rowByMetric(rows, name)
		assert.True(t, ok, name)
	}
	ltv, _ := rowByMetric(rows, "Secured Debt Loan-To-Value")
	assert.InDelta(t, 60, ltv.Value, 1e-9)
	dti, _ := rowByMetric(rows, "Debt to Income Ratio")
	assert.InDelta(t, 13.75, dti.Value, 1e-9)
	for _, r := range rows {
		assert.NotEmpty(t, r.Unit)
		assert.NotEmpty(t, r.Formula)
	}
}

func TestDatapointRows_UsesTrackedSavingsRate(t *testing.T) {
	l := domain.NewLedger()
	l.Income = []domain.Record{{Amount: 4000, Date: "2026-02-01"}}
	l.Expenses = []domain.Record{{Amount: 3950, Date: "2026-02-01"}}
	l.Assets = []domain.Record{{Amount: 400, RecordType: "savings", Date: "2026-02-10"}}

	rows, err := metrics.DatapointRows(l, asOf)
	require.NoError(t, err)
	row, ok := rowByMetric(rows, "Savings Rate")
	require.True(t, ok)
	assert.Equal(t, 10.0, row.Value)
}

func TestDatapointRows_MalformedLedger(t *testing.T) {
	rows, err := metrics.DatapointRows(domain.Ledger{Income: []domain.Record{}, Expenses: []domain.Record{}}, asOf)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestIncomeExpenseSummary(t *testing.T) {
	s, err := metrics.IncomeExpenseSummary(domain.Ledger{Income: amounts(5000, 1000), Expenses: amounts(3000, 500)})
	require.NoError(t, err)
	assert.Equal(t, 6000.0, s.TotalIncome)
	assert.Equal(t, 3500.0, s.TotalExpenses)
	assert.Equal(t, 2500.0, s.MonthlySurplusDeficit)
	assert.Equal(t, 2500.0/6000.0*100, s.SavingsRatePercent)
}

func TestSavingsStorage(t *testing.T) {
	t.Run("no tracked savings", func(t *testing.T) {
		s, err := metrics.SavingsStorage(domain.Ledger{
			Income:   amounts(6000),
			Expenses: amounts(4000),
			Assets: []domain.Record{
				{ID: "a1", Person: "PersonA", Item: "HYSA", Amount: 9000},
				{ID: "a2", Person: "PersonB", Item: "Brokerage Cash", Amount: 1000},
			},
		}, asOf)
		require.NoError(t, err)
		assert.Zero(t, s.MonthlySavingsAmount)
		assert.Zero(t, s.MonthlySavingsRatePercent)
		assert.Equal(t, 10000.0, s.TotalStoredSavings)
		require.Len(t, s.StorageRows, 2)
		assert.InDelta(t, 90, s.StorageRows[0].SharePct, 1e-9)
	})

	t.Run("tracked savings this month", func(t *testing.T) {
		s, err := metrics.SavingsStorage(domain.Ledger{
			Income:   amounts(5000),
			Expenses: amounts(4500),
			Assets: []domain.Record{
				{ID: "s1", Item: "Savings Transfer", RecordType: "savings", Amount: 700, Date: "2026-02-02"},
				{ID: "s2", Item: "Older Savings Transfer", RecordType: "savings", Amount: 400, Date: "2026-01-02"},
			},
		}, asOf)
		require.NoError(t, err)
		assert.Equal(t, 700.0, s.MonthlySavingsAmount)
		assert.InDelta(t, 14, s.MonthlySavingsRatePercent, 0.0001)
	})
}

func TestEmergencyFund_SixMonthsOfObligations(t *testing.T) {
	s, err := metrics.EmergencyFund(domain.Ledger{
		Expenses: amounts(1000, 500),
		Debts:    []domain.Record{{MinimumPayment: 250}},
		Credit:   []domain.Record{{MinimumPayment: 100}},
		Loans:    []domain.Record{{MinimumPayment: 150}},
		Assets:   []domain.Record{{Item: "Savings", Amount: 800}, {Item: "Brokerage", Amount: 1200}},
		AssetHoldings: []domain.AssetHolding{
			{Item: "Bank", AssetMarketValue: 200},
			{Item: "Stocks", AssetMarketValue: 1000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, s.MonthlyExpenses)
	assert.Equal(t, 500.0, s.MonthlyDebtMinimums)
	assert.Equal(t, 2000.0, s.MonthlyObligations)
	assert.Equal(t, 12000.0, s.EmergencyFundGoal)
	assert.Equal(t, 4000.0, s.LiquidTarget)
	assert.Equal(t, 1000.0, s.LiquidAmount)
	assert.Equal(t, 2200.0, s.InvestedAmount)
	assert.Equal(t, 3000.0, s.MissingLiquidAmount)
	assert.Equal(t, 8800.0, s.MissingTotalAmount)
}

func TestRecommendedSavings(t *testing.T) {
	l := domain.Ledger{
		Income:   amounts(8000),
		Expenses: amounts(5000),
		Debts:    []domain.Record{{MinimumPayment: 600}},
		Credit:   []domain.Record{{MinimumPayment: 200}},
		Loans:    []domain.Record{{MinimumPayment: 200}},
	}
	r, err := metrics.RecommendedSavings(l, asOf)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, r.TotalIncomeForReference)
	assert.Equal(t, 12.5, r.DebtToIncomeRatioPercent)
	assert.Equal(t, 1600.0, r.RecommendedMonthlySavings)
	assert.Equal(t, 800.0, r.MinimumRecommendedSavings)
	assert.Equal(t, 1600.0, r.SavingsGap)
	assert.NotEmpty(t, r.RecommendationReason)

	l.Debts = []domain.Record{{MinimumPayment: 3000}}
	r, err = metrics.RecommendedSavings(l, asOf)
	require.NoError(t, err)
	assert.Equal(t, 15.0, r.TargetSavingsRatePercent)
	assert.Equal(t, 1200.0, r.RecommendedMonthlySavings)
}

func TestGoalStatusSummary(t *testing.T) {
	s, err := metrics.GoalStatusSummary([]domain.Goal{
		{Title: "A", Status: "completed", TimeframeMonths: 1},
		{Title: "B", Status: "in progress", TimeframeMonths: 6},
		{Title: "C", Status: "not started", TimeframeMonths: 12},
		{Title: "D", Status: "not started", TimeframeMonths: 36},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.CompletedCount)
	assert.Equal(t, 1, s.InProgressCount)
	assert.Equal(t, 2, s.NotStartedCount)
	assert.Equal(t, 1, s.ShortTermNotStartedCount)

	_, err = metrics.GoalStatusSummary(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = metrics.GoalStatusSummary([]domain.Goal{{Title: "X", Status: "abandoned"}})
	assert.Equal(t, "goals[0].status", apperrors.FieldOf(err))
}

func TestCreditCardSummary(t *testing.T) {
	s, err := metrics.CreditCardSummary([]domain.CreditCard{
		{MaxCapacity: 12345, CurrentBalance: 0, MonthlyPayment: 275},
		{MaxCapacity: 4321, CurrentBalance: 7654, MonthlyPayment: 325},
	})
	require.NoError(t, err)
	assert.Equal(t, 7654.0, s.TotalCurrent)
	assert.Equal(t, 600.0, s.TotalMonthly)
	assert.Equal(t, 16666.0, s.MaxCapacity)
	assert.Equal(t, 9012.0, s.RemainingCapacity)

	_, err = metrics.CreditCardSummary(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = metrics.CreditCardSummary([]domain.CreditCard{{MaxCapacity: -1}})
	assert.Equal(t, "creditCards[0].maxCapacity", apperrors.FieldOf(err))
}

func TestUnifiedRecords_SignsEveryCollection(t *testing.T) {
	rows, err := metrics.UnifiedRecords(domain.Ledger{
		Income:        []domain.Record{{ID: "i1", Amount: 2000}},
		Expenses:      []domain.Record{{ID: "e1", Amount: 500}},
		Assets:        []domain.Record{{ID: "a1", RecordType: "savings", Amount: 300}},
		Debts:         []domain.Record{{ID: "d1", MinimumPayment: 100}},
		Credit:        []domain.Record{{ID: "c1", MinimumPayment: 80}},
		Loans:         []domain.Record{{ID: "l1", MinimumPayment: 120}},
		CreditCards:   []domain.CreditCard{{ID: "cc1", Item: "CardAlpha", MonthlyPayment: 250}},
		AssetHoldings: []domain.AssetHolding{{ID: "ah1", Item: "House", AssetValueOwed: 100, AssetMarketValue: 1000}},
		Goals:         []domain.Goal{},
	})
	require.NoError(t, err)
	require.Len(t, rows, 8)

	byType := map[string]metrics.UnifiedRecord{}
	for _, r := range rows {
		byType[r.RecordType] = r
	}
	assert.Equal(t, 2000.0, byType["income"].SignedAmount)
	assert.Equal(t, -500.0, byType["expense"].SignedAmount)
	assert.Equal(t, -300.0, byType["savings"].SignedAmount)
	assert.Equal(t, 100.0, byType["debt"].Amount)
	assert.Equal(t, 120.0, byType["loan"].Amount)
	assert.Equal(t, 80.0, byType["credit"].Amount)
	assert.Equal(t, 250.0, byType["credit card"].Amount)
	assert.Equal(t, 900.0, byType["asset"].Amount)
	assert.Zero(t, byType["asset"].SignedAmount)
}

func TestUnifiedRecords_UnderwaterHoldingIsNotNegative(t *testing.T) {
	l := domain.NewLedger()
	l.AssetHoldings = []domain.AssetHolding{
		{ID: "boat", Item: "Boat", AssetMarketValue: 20000, AssetValueOwed: 26000},
		{ID: "house", Item: "House", AssetMarketValue: 300000, AssetValueOwed: 180000},
	}

	rows, err := metrics.UnifiedRecords(l)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Amount, 0.0, r.ID)
		assert.Zero(t, r.SignedAmount, r.ID)
	}
	assert.Zero(t, rows[0].Amount)
	assert.Equal(t, 120000.0, rows[1].Amount)
}

func TestLiquidity_ClassifiesByKeyword(t *testing.T) {
	l := domain.NewLedger()
	l.Assets = []domain.Record{
		{Item: "Checking", Amount: 100},
		{Item: "Roth IRA", Amount: 1000},
		{Item: "Index Fund", Category: "Investments", Amount: 500, RecordType: "savings"},
	}
	l.AssetHoldings = []domain.AssetHolding{
		{Item: "Cash Envelope", AssetMarketValue: 50},
		{Item: "House", AssetMarketValue: 300000, AssetValueOwed: 200000},
	}
	got := metrics.Liquidity(l)
	assert.Equal(t, 650.0, got.Liquid)
	assert.Equal(t, 101000.0, got.Invested)
}
