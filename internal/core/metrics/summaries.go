package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
)

const (
	emergencyFundMonths    = 6
	liquidTargetMonths     = 2
	minimumSavingsPercent  = 10
	healthyDebtToIncome    = 36
	targetSavingsLowDebt   = 20
	targetSavingsHighDebt  = 15
	shortTermGoalMonthsMax = 12
)

// IncomeExpense is the monthly cash-flow summary.
type IncomeExpense struct {
	TotalIncome           float64 `json:"totalIncome"`
	TotalExpenses         float64 `json:"totalExpenses"`
	MonthlySurplusDeficit float64 `json:"monthlySurplusDeficit"`
	SavingsRatePercent    float64 `json:"savingsRatePercent"`
}

// IncomeExpenseSummary totals income and expenses.
func IncomeExpenseSummary(l domain.Ledger) (IncomeExpense, error) {
	if err := l.Require(domain.CollectionIncome, domain.CollectionExpenses); err != nil {
		return IncomeExpense{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return IncomeExpense{}, err
	}
	inc := sumRecords(l.Income, amountOf)
	exp := sumRecords(l.Expenses, amountOf)
	surplus := sub(inc, exp)
	return IncomeExpense{
		TotalIncome:           inc,
		TotalExpenses:         exp,
		MonthlySurplusDeficit: surplus,
		SavingsRatePercent:    percent(surplus, inc),
	}, nil
}

// trackedSavings sums asset rows marked as savings that are dated in the asOf
// month or undated. found is false when no such row exists.
func trackedSavings(l domain.Ledger, asOf time.Time) (amount float64, found bool) {
	month := domain.MonthOf(asOf.UTC())
	var values []float64
	for _, r := range l.Assets {
		if !r.IsSavings() {
			continue
		}
		if d, ok := r.DateValue(); ok && !month.Contains(d) {
			continue
		}
		values = append(values, r.Amount)
	}
	return sum(values...), len(values) > 0
}

// StorageRow shows where stored savings sit.
type StorageRow struct {
	ID          string  `json:"id,omitempty"`
	Person      string  `json:"person,omitempty"`
	Item        string  `json:"item,omitempty"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	SharePct    float64 `json:"sharePercent"`
}

// SavingsStorageSummary reports this month's tracked savings and the stored
// balances behind them.
type SavingsStorageSummary struct {
	MonthlySavingsAmount      float64      `json:"monthlySavingsAmount"`
	MonthlySavingsRatePercent float64      `json:"monthlySavingsRatePercent"`
	TotalStoredSavings        float64      `json:"totalStoredSavings"`
	StorageRows               []StorageRow `json:"storageRows"`
}

// SavingsStorage computes tracked savings for the month of asOf.
func SavingsStorage(l domain.Ledger, asOf time.Time) (SavingsStorageSummary, error) {
	if err := l.Require(domain.CollectionIncome, domain.CollectionExpenses, domain.CollectionAssets); err != nil {
		return SavingsStorageSummary{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return SavingsStorageSummary{}, err
	}
	income := sumRecords(l.Income, amountOf)
	saved, _ := trackedSavings(l, asOf)
	stored := sumRecords(l.Assets, amountOf)

	rows := make([]StorageRow, 0, len(l.Assets))
	for _, r := range l.Assets {
		rows = append(rows, StorageRow{
			ID:          r.ID,
			Person:      r.Person,
			Item:        r.Item,
			Description: r.Description,
			Amount:      r.Amount,
			SharePct:    percent(r.Amount, stored),
		})
	}
	return SavingsStorageSummary{
		MonthlySavingsAmount:      saved,
		MonthlySavingsRatePercent: percent(saved, income),
		TotalStoredSavings:        stored,
		StorageRows:               rows,
	}, nil
}

// EmergencyFundSummary tracks the six-month emergency fund.
type EmergencyFundSummary struct {
	MonthlyExpenses     float64 `json:"monthlyExpenses"`
	MonthlyDebtMinimums float64 `json:"monthlyDebtMinimums"`
	MonthlyObligations  float64 `json:"monthlyObligations"`
	EmergencyFundGoal   float64 `json:"emergencyFundGoal"`
	LiquidTarget        float64 `json:"liquidTarget"`
	LiquidAmount        float64 `json:"liquidAmount"`
	InvestedAmount      float64 `json:"investedAmount"`
	MissingLiquidAmount float64 `json:"missingLiquidAmount"`
	MissingTotalAmount  float64 `json:"missingTotalAmount"`
	CoveredMonths       float64 `json:"coveredMonths"`
}

// EmergencyFund sizes the emergency fund from monthly obligations, which are
// expenses plus liability minimums.
func EmergencyFund(l domain.Ledger) (EmergencyFundSummary, error) {
	err := l.Require(domain.CollectionExpenses, domain.CollectionDebts, domain.CollectionCredit,
		domain.CollectionLoans, domain.CollectionAssets)
	if err != nil {
		return EmergencyFundSummary{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return EmergencyFundSummary{}, err
	}

	expenses := sumRecords(l.Expenses, amountOf)
	minimums := MonthlyDebtMinimums(l)
	obligations := sum(expenses, minimums)
	liq := Liquidity(l)
	goal := obligations * emergencyFundMonths
	target := obligations * liquidTargetMonths

	return EmergencyFundSummary{
		MonthlyExpenses:     expenses,
		MonthlyDebtMinimums: minimums,
		MonthlyObligations:  obligations,
		EmergencyFundGoal:   goal,
		LiquidTarget:        target,
		LiquidAmount:        liq.Liquid,
		InvestedAmount:      liq.Invested,
		MissingLiquidAmount: math.Max(sub(target, liq.Liquid), 0),
		MissingTotalAmount:  math.Max(sub(goal, sum(liq.Liquid, liq.Invested)), 0),
		CoveredMonths:       ratio(sum(liq.Liquid, liq.Invested), obligations),
	}, nil
}

// SavingsRecommendation is the suggested monthly savings target.
type SavingsRecommendation struct {
	TotalIncomeForReference   float64 `json:"totalIncomeForReference"`
	DebtToIncomeRatioPercent  float64 `json:"debtToIncomeRatioPercent"`
	TargetSavingsRatePercent  float64 `json:"targetSavingsRatePercent"`
	RecommendedMonthlySavings float64 `json:"recommendedMonthlySavings"`
	MinimumRecommendedSavings float64 `json:"minimumRecommendedSavings"`
	CurrentTrackedSavings     float64 `json:"currentTrackedSavings"`
	SavingsGap                float64 `json:"savingsGap"`
	RecommendationReason      string  `json:"recommendationReason"`
}

// RecommendedSavings suggests 20% of income, or 15% while debt payments take
// more than 36% of income, never below a 10% floor.
func RecommendedSavings(l domain.Ledger, asOf time.Time) (SavingsRecommendation, error) {
	err := l.Require(domain.CollectionIncome, domain.CollectionExpenses, domain.CollectionDebts,
		domain.CollectionCredit, domain.CollectionLoans)
	if err != nil {
		return SavingsRecommendation{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return SavingsRecommendation{}, err
	}

	income := sumRecords(l.Income, amountOf)
	dti := percent(MonthlyDebtMinimums(l), income)
	rate := float64(targetSavingsLowDebt)
	reason := fmt.Sprintf("Debt payments are %.1f%% of income; aim to save %d%% of income.", dti, targetSavingsLowDebt)
	if dti > healthyDebtToIncome {
		rate = targetSavingsHighDebt
		reason = fmt.Sprintf("Debt payments are %.1f%% of income, above %d%%; save %d%% and direct the rest to debt.",
			dti, healthyDebtToIncome, targetSavingsHighDebt)
	}
	saved, _ := trackedSavings(l, asOf)
	recommended := income * rate / 100

	return SavingsRecommendation{
		TotalIncomeForReference:   income,
		DebtToIncomeRatioPercent:  dti,
		TargetSavingsRatePercent:  rate,
		RecommendedMonthlySavings: recommended,
		MinimumRecommendedSavings: income * minimumSavingsPercent / 100,
		CurrentTrackedSavings:     saved,
		SavingsGap:                math.Max(sub(recommended, saved), 0),
		RecommendationReason:      reason,
	}, nil
}

// GoalStatusCounts summarizes goals by status.
type GoalStatusCounts struct {
	TotalCount               int     `json:"totalCount"`
	CompletedCount           int     `json:"completedCount"`
	InProgressCount          int     `json:"inProgressCount"`
	NotStartedCount          int     `json:"notStartedCount"`
	ShortTermNotStartedCount int     `json:"shortTermNotStartedCount"`
	CompletionRatePercent    float64 `json:"completionRatePercent"`
}

// GoalStatusSummary counts goals per status. Not-started goals due within a
// year are counted separately.
func GoalStatusSummary(goals []domain.Goal) (GoalStatusCounts, error) {
	if goals == nil {
		return GoalStatusCounts{}, apperrors.NewValidationError("goals", "goals must be a list")
	}
	out := GoalStatusCounts{TotalCount: len(goals)}
	for i, g := range goals {
		status := validation.NormalizeGoalStatus(string(g.Status))
		switch status {
		case domain.GoalCompleted:
			out.CompletedCount++
		case domain.GoalInProgress:
			out.InProgressCount++
		case domain.GoalNotStarted:
			out.NotStartedCount++
			if g.TimeframeMonths > 0 && g.TimeframeMonths <= shortTermGoalMonthsMax {
				out.ShortTermNotStartedCount++
			}
		default:
			return GoalStatusCounts{}, apperrors.NewValidationError(fmt.Sprintf("goals[%d].status", i),
				fmt.Sprintf("unknown goal status %q", g.Status))
		}
	}
	out.CompletionRatePercent = percent(float64(out.CompletedCount), float64(out.TotalCount))
	return out, nil
}

// CreditCardTotals aggregates tracked credit cards.
type CreditCardTotals struct {
	TotalCurrent         float64 `json:"totalCurrent"`
	TotalMonthly         float64 `json:"totalMonthly"`
	TotalMinimum         float64 `json:"totalMinimum"`
	MaxCapacity          float64 `json:"maxCapacity"`
	RemainingCapacity    float64 `json:"remainingCapacity"`
	UtilizationPercent   float64 `json:"utilizationPercent"`
	WeightedInterestRate float64 `json:"weightedInterestRatePercent"`
}

// CreditCardSummary totals balances, payments and capacity over cards.
func CreditCardSummary(cards []domain.CreditCard) (CreditCardTotals, error) {
	if cards == nil {
		return CreditCardTotals{}, apperrors.NewValidationError("creditCards", "credit cards must be a list")
	}
	var balances, monthly, minimums, limits []float64
	var weighted float64
	for i, c := range cards {
		if err := validation.ValidateCardAmounts(c, i); err != nil {
			return CreditCardTotals{}, err
		}
		balances = append(balances, c.CurrentBalance)
		monthly = append(monthly, c.MonthlyPayment)
		minimums = append(minimums, c.MinimumPayment)
		limits = append(limits, c.MaxCapacity)
		weighted += c.CurrentBalance * c.InterestRatePercent
	}
	current := sum(balances...)
	capacity := sum(limits...)
	return CreditCardTotals{
		TotalCurrent:         current,
		TotalMonthly:         sum(monthly...),
		TotalMinimum:         sum(minimums...),
		MaxCapacity:          capacity,
		RemainingCapacity:    math.Max(sub(capacity, current), 0),
		UtilizationPercent:   percent(current, capacity),
		WeightedInterestRate: ratio(weighted, current),
	}, nil
}
