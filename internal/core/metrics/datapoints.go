package metrics

import (
	"math"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// Units of a datapoint row.
const (
	UnitCurrency = "currency"
	UnitPercent  = "percent"
	UnitMonths   = "months"
)

// DatapointRow is one labeled figure of the detailed dashboard table.
type DatapointRow struct {
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Formula string  `json:"formula"`
}

// DatapointRows flattens the dashboard into labeled rows. Credit capacity
// combines the credit collection with tracked credit cards.
func DatapointRows(l domain.Ledger, asOf time.Time) ([]DatapointRow, error) {
	m, err := Dashboard(l)
	if err != nil {
		return nil, err
	}
	monthly, err := MonthOverMonth(l, asOf)
	if err != nil {
		return nil, err
	}

	savingsRate := m.SavingsRatePercent
	savingsFormula := "(income - expenses) / income x 100"
	if saved, ok := trackedSavings(l, asOf); ok {
		savingsRate = percent(saved, m.TotalIncome)
		savingsFormula = "tracked savings this month / income x 100"
	}

	var cardLimits, cardBalances []float64
	for _, c := range l.CreditCards {
		cardLimits = append(cardLimits, c.MaxCapacity)
		cardBalances = append(cardBalances, c.CurrentBalance)
	}
	capacity := sum(m.TotalCreditLimit, sum(cardLimits...))
	balance := sum(sumRecords(l.Credit, amountOf), sum(cardBalances...))

	obligations := sum(m.TotalExpenses, m.MonthlyDebtPayments)

	return []DatapointRow{
		{"Total Income", m.TotalIncome, UnitCurrency, "sum(income.amount)"},
		{"Total Expenses", m.TotalExpenses, UnitCurrency, "sum(expenses.amount)"},
		{"Monthly Surplus/Deficit", m.MonthlySurplusDeficit, UnitCurrency, "income - expenses"},
		{"Savings Rate", savingsRate, UnitPercent, savingsFormula},
		{"Total Assets", m.TotalAssets, UnitCurrency, "sum(assets.amount) + sum(holding market - owed)"},
		{"Total Liabilities", m.TotalLiabilities, UnitCurrency, "sum(debts + credit + loans)"},
		{"Net Worth", m.NetWorth, UnitCurrency, "assets - liabilities"},
		{"Credit Card Capacity", capacity, UnitCurrency, "sum(credit.creditLimit) + sum(creditCards.maxCapacity)"},
		{"Credit Card Balance", balance, UnitCurrency, "sum(credit.amount) + sum(creditCards.currentBalance)"},
		{"Credit Utilization", percent(balance, capacity), UnitPercent, "card balance / card capacity x 100"},
		{"Available Credit", math.Max(sub(capacity, balance), 0), UnitCurrency, "max(capacity - balance, 0)"},
		{"Monthly Debt Payments", m.MonthlyDebtPayments, UnitCurrency, "sum(minimumPayment) over debts, credit, loans"},
		{"Debt to Income Ratio", m.DebtToIncomeRatioPercent, UnitPercent, "debt payments / income x 100"},
		{"Debt to Asset Ratio", m.DebtToAssetRatioPercent, UnitPercent, "liabilities / assets x 100"},
		{"Emergency Runway (Months)", m.EmergencyRunwayMonths, UnitMonths, "liquid assets / (expenses + debt payments)"},
		{"Emergency Fund Goal", obligations * emergencyFundMonths, UnitCurrency, "6 x (expenses + debt payments)"},
		{"Secured Debt Loan-To-Value", securedLoanToValue(l), UnitPercent, "secured balances / collateral value x 100"},
		{"Goal Progress", m.GoalProgressScorePercent, UnitPercent, "mean(current / target) x 100"},
		{"Goals Completed", m.GoalsCompletedPercent, UnitPercent, "completed goals / goals x 100"},
		{"Current Month Net Worth Change", monthly.NetWorth.Delta, UnitCurrency, "dated net worth this month - last month"},
		{"Weighted Average APR", m.WeightedAverageInterestRatePercent, UnitPercent, "sum(balance x APR) / sum(balance)"},
	}, nil
}

// securedLoanToValue is the combined loan-to-value of debts and loans that
// carry collateral.
func securedLoanToValue(l domain.Ledger) float64 {
	var owed, collateral []float64
	for _, rows := range [][]domain.Record{l.Debts, l.Loans} {
		for _, r := range rows {
			if r.CollateralAssetMarketValue > 0 {
				owed = append(owed, r.Amount)
				collateral = append(collateral, r.CollateralAssetMarketValue)
			}
		}
	}
	return percent(sum(owed...), sum(collateral...))
}
