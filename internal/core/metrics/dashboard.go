package metrics

import (
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
)

// DashboardCollections are the keys Dashboard cannot work without.
var DashboardCollections = []domain.Collection{
	domain.CollectionIncome,
	domain.CollectionExpenses,
	domain.CollectionAssets,
	domain.CollectionDebts,
	domain.CollectionCredit,
	domain.CollectionLoans,
}

// DashboardMetrics holds the twenty headline KPIs of a ledger.
type DashboardMetrics struct {
	TotalIncome                        float64 `json:"totalIncome"`
	TotalExpenses                      float64 `json:"totalExpenses"`
	MonthlySurplusDeficit              float64 `json:"monthlySurplusDeficit"`
	SavingsRatePercent                 float64 `json:"savingsRatePercent"`
	TotalAssets                        float64 `json:"totalAssets"`
	TotalLiabilities                   float64 `json:"totalLiabilities"`
	NetWorth                           float64 `json:"netWorth"`
	CreditUtilizationPercent           float64 `json:"creditUtilizationPercent"`
	TotalCreditLimit                   float64 `json:"totalCreditLimit"`
	AvailableCredit                    float64 `json:"availableCredit"`
	MonthlyDebtPayments                float64 `json:"monthlyDebtPayments"`
	DebtToIncomeRatioPercent           float64 `json:"debtToIncomeRatioPercent"`
	DebtToAssetRatioPercent            float64 `json:"debtToAssetRatioPercent"`
	ExpenseToIncomeRatioPercent        float64 `json:"expenseToIncomeRatioPercent"`
	EmergencyRunwayMonths              float64 `json:"emergencyRunwayMonths"`
	FreeCashFlowAfterDebt              float64 `json:"freeCashFlowAfterDebt"`
	WeightedAverageInterestRatePercent float64 `json:"weightedAverageInterestRatePercent"`
	GoalProgressScorePercent           float64 `json:"goalProgressScorePercent"`
	GoalsCompletedPercent              float64 `json:"goalsCompletedPercent"`
	NetWorthToAnnualIncomeRatio        float64 `json:"netWorthToAnnualIncomeRatio"`
}

type metricDef struct {
	name string
	get  func(DashboardMetrics) float64
}

var metricDefs = []metricDef{
	{"totalIncome", func(m DashboardMetrics) float64 { return m.TotalIncome }},
	{"totalExpenses", func(m DashboardMetrics) float64 { return m.TotalExpenses }},
	{"monthlySurplusDeficit", func(m DashboardMetrics) float64 { return m.MonthlySurplusDeficit }},
	{"savingsRatePercent", func(m DashboardMetrics) float64 { return m.SavingsRatePercent }},
	{"totalAssets", func(m DashboardMetrics) float64 { return m.TotalAssets }},
	{"totalLiabilities", func(m DashboardMetrics) float64 { return m.TotalLiabilities }},
	{"netWorth", func(m DashboardMetrics) float64 { return m.NetWorth }},
	{"creditUtilizationPercent", func(m DashboardMetrics) float64 { return m.CreditUtilizationPercent }},
	{"totalCreditLimit", func(m DashboardMetrics) float64 { return m.TotalCreditLimit }},
	{"availableCredit", func(m DashboardMetrics) float64 { return m.AvailableCredit }},
	{"monthlyDebtPayments", func(m DashboardMetrics) float64 { return m.MonthlyDebtPayments }},
	{"debtToIncomeRatioPercent", func(m DashboardMetrics) float64 { return m.DebtToIncomeRatioPercent }},
	{"debtToAssetRatioPercent", func(m DashboardMetrics) float64 { return m.DebtToAssetRatioPercent }},
	{"expenseToIncomeRatioPercent", func(m DashboardMetrics) float64 { return m.ExpenseToIncomeRatioPercent }},
	{"emergencyRunwayMonths", func(m DashboardMetrics) float64 { return m.EmergencyRunwayMonths }},
	{"freeCashFlowAfterDebt", func(m DashboardMetrics) float64 { return m.FreeCashFlowAfterDebt }},
	{"weightedAverageInterestRatePercent", func(m DashboardMetrics) float64 { return m.WeightedAverageInterestRatePercent }},
	{"goalProgressScorePercent", func(m DashboardMetrics) float64 { return m.GoalProgressScorePercent }},
	{"goalsCompletedPercent", func(m DashboardMetrics) float64 { return m.GoalsCompletedPercent }},
	{"netWorthToAnnualIncomeRatio", func(m DashboardMetrics) float64 { return m.NetWorthToAnnualIncomeRatio }},
}

// Names lists the metric names in display order.
func Names() []string {
	out := make([]string, len(metricDefs))
	for i, d := range metricDefs {
		out[i] = d.name
	}
	return out
}

// Value returns the metric called name.
func (m DashboardMetrics) Value(name string) (float64, bool) {
	for _, d := range metricDefs {
		if d.name == name {
			return d.get(m), true
		}
	}
	return 0, false
}

// AsMap returns every metric keyed by name.
func (m DashboardMetrics) AsMap() map[string]float64 {
	out := make(map[string]float64, len(metricDefs))
	for _, d := range metricDefs {
		out[d.name] = d.get(m)
	}
	return out
}

// Dashboard computes the twenty dashboard metrics of l.
func Dashboard(l domain.Ledger) (DashboardMetrics, error) {
	if err := l.Require(DashboardCollections...); err != nil {
		return DashboardMetrics{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return DashboardMetrics{}, err
	}

	var m DashboardMetrics
	m.TotalIncome = sumRecords(l.Income, amountOf)
	m.TotalExpenses = sumRecords(l.Expenses, amountOf)
	m.MonthlySurplusDeficit = sub(m.TotalIncome, m.TotalExpenses)
	m.SavingsRatePercent = percent(m.MonthlySurplusDeficit, m.TotalIncome)

	m.TotalAssets = TotalAssets(l)
	m.TotalLiabilities = TotalLiabilities(l)
	m.NetWorth = m.TotalAssets - m.TotalLiabilities

	creditBalance := sumRecords(l.Credit, amountOf)
	m.TotalCreditLimit = sumRecords(l.Credit, limitOf)
	m.CreditUtilizationPercent = percent(creditBalance, m.TotalCreditLimit)
	if avail := sub(m.TotalCreditLimit, creditBalance); avail > 0 {
		m.AvailableCredit = avail
	}

	m.MonthlyDebtPayments = MonthlyDebtMinimums(l)
	m.DebtToIncomeRatioPercent = percent(m.MonthlyDebtPayments, m.TotalIncome)
	m.DebtToAssetRatioPercent = percent(m.TotalLiabilities, m.TotalAssets)
	m.ExpenseToIncomeRatioPercent = percent(m.TotalExpenses, m.TotalIncome)
	m.EmergencyRunwayMonths = ratio(Liquidity(l).Liquid, sum(m.TotalExpenses, m.MonthlyDebtPayments))
	m.FreeCashFlowAfterDebt = sub(m.MonthlySurplusDeficit, m.MonthlyDebtPayments)
	m.WeightedAverageInterestRatePercent = WeightedAverageRate(l)

	m.GoalProgressScorePercent, m.GoalsCompletedPercent = goalScores(l.Goals)
	m.NetWorthToAnnualIncomeRatio = ratio(m.NetWorth, m.TotalIncome*12)
	return m, nil
}

// WeightedAverageRate is the balance-weighted APR over debts, credit and loans.
func WeightedAverageRate(l domain.Ledger) float64 {
	var weighted, balance float64
	for _, cr := range l.Liabilities() {
		weighted += cr.Record.Amount * cr.Record.InterestRatePercent
		balance += cr.Record.Amount
	}
	return ratio(weighted, balance)
}

func goalScores(goals []domain.Goal) (progress, completed float64) {
	if len(goals) == 0 {
		return 0, 0
	}
	var total float64
	done := 0
	for _, g := range goals {
		if g.TargetAmount > 0 {
			total += clamp(g.CurrentAmount/g.TargetAmount, 0, 1)
		} else if validation.NormalizeGoalStatus(string(g.Status)) == domain.GoalCompleted {
			total++
		}
		if validation.NormalizeGoalStatus(string(g.Status)) == domain.GoalCompleted {
			done++
		}
	}
	n := float64(len(goals))
	return clamp(total/n*100, 0, 100), float64(done) / n * 100
}
