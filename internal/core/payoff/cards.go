package payoff

import (
	"math"
	"sort"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/validation"
	"github.com/shopspring/decimal"
)

// StrategyAvalanche names the allocation used by RecommendCardPayments.
const StrategyAvalanche = "avalanche: extra cash goes to the highest APR card first"

// nonAmortizingMonths stands in for the payoff time of a card whose payment
// never clears it, and caps every card's payoff estimate.
const nonAmortizingMonths = 600

// CardRecommendation is the suggested payment for one card.
type CardRecommendation struct {
	ID                        string  `json:"id,omitempty"`
	Person                    string  `json:"person,omitempty"`
	Item                      string  `json:"item,omitempty"`
	CurrentBalance            float64 `json:"currentBalance"`
	InterestRatePercent       float64 `json:"interestRatePercent"`
	MinimumPayment            float64 `json:"minimumPayment"`
	CurrentMonthlyPayment     float64 `json:"currentMonthlyPayment"`
	RecommendedMonthlyPayment float64 `json:"recommendedMonthlyPayment"`
	ExtraPayment              float64 `json:"extraPayment"`
	CurrentPayoffMonths       int     `json:"currentPayoffMonths"`
	RecommendedPayoffMonths   int     `json:"recommendedPayoffMonths"`
	PriorityRank              int     `json:"priorityRank"`
}

// CardPlan is the recommended payment plan across every card.
type CardPlan struct {
	Strategy                        string               `json:"strategy"`
	AvailableExtraPool              float64              `json:"availableExtraPool"`
	UnallocatedExtra                float64              `json:"unallocatedExtra"`
	Rows                            []CardRecommendation `json:"rows"`
	CurrentTotalMonthlyPayment      float64              `json:"currentTotalMonthlyPayment"`
	RecommendedTotalMonthlyPayment  float64              `json:"recommendedTotalMonthlyPayment"`
	WeightedPayoffMonthsCurrent     float64              `json:"weightedPayoffMonthsCurrent"`
	WeightedPayoffMonthsRecommended float64              `json:"weightedPayoffMonthsRecommended"`
}

// basePayment is what a card is paid today: the planned monthly payment, but
// never less than the minimum.
func basePayment(c domain.CreditCard) float64 {
	return math.Max(c.MonthlyPayment, c.MinimumPayment)
}

func cappedPayoffMonths(balance, payment, ratePercent float64) int {
	if balance <= 0 {
		return 0
	}
	n, err := EstimatePayoffMonths(balance, payment, ratePercent)
	if err != nil {
		return nonAmortizingMonths
	}
	return min(n, nonAmortizingMonths)
}

// RecommendCardPayments spreads the household's free cash over cards,
// highest APR first. The pool is income minus expenses minus ledger
// minimums minus what the cards are already paid; each card absorbs at most
// its remaining balance.
func RecommendCardPayments(l domain.Ledger, cards []domain.CreditCard) (CardPlan, error) {
	if err := l.Require(domain.CollectionIncome, domain.CollectionExpenses); err != nil {
		return CardPlan{}, err
	}
	if cards == nil {
		return CardPlan{}, apperrors.NewValidationError("creditCards", "credit cards must be a list")
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return CardPlan{}, err
	}
	for i, c := range cards {
		if err := validation.ValidateCardAmounts(c, i); err != nil {
			return CardPlan{}, err
		}
	}

	summary, err := metrics.IncomeExpenseSummary(l)
	if err != nil {
		return CardPlan{}, err
	}
	currentTotal := decimal.Zero
	for _, c := range cards {
		currentTotal = currentTotal.Add(decimal.NewFromFloat(basePayment(c)))
	}
	pool := decimal.NewFromFloat(summary.MonthlySurplusDeficit).
		Sub(decimal.NewFromFloat(metrics.MonthlyDebtMinimums(l))).
		Sub(currentTotal)
	if pool.IsNegative() {
		pool = decimal.Zero
	}
	available := pool

	order := make([]int, len(cards))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cards[order[a]].InterestRatePercent > cards[order[b]].InterestRatePercent
	})

	rows := make([]CardRecommendation, len(cards))
	for rank, idx := range order {
		c := cards[idx]
		base := basePayment(c)
		headroom := decimal.NewFromFloat(c.CurrentBalance).Sub(decimal.NewFromFloat(base))
		extra := decimal.Zero
		if headroom.IsPositive() {
			extra = decimal.Min(pool, headroom)
		}
		pool = pool.Sub(extra)
		extraF, _ := extra.Float64()
		rows[idx] = CardRecommendation{
			ID:                        c.ID,
			Person:                    c.Person,
			Item:                      c.Item,
			CurrentBalance:            c.CurrentBalance,
			InterestRatePercent:       c.InterestRatePercent,
			MinimumPayment:            c.MinimumPayment,
			CurrentMonthlyPayment:     base,
			RecommendedMonthlyPayment: base + extraF,
			ExtraPayment:              extraF,
			CurrentPayoffMonths:       cappedPayoffMonths(c.CurrentBalance, base, c.InterestRatePercent),
			RecommendedPayoffMonths:   cappedPayoffMonths(c.CurrentBalance, base+extraF, c.InterestRatePercent),
			PriorityRank:              rank + 1,
		}
	}

	plan := CardPlan{Strategy: StrategyAvalanche, Rows: rows}
	plan.AvailableExtraPool, _ = available.Float64()
	plan.UnallocatedExtra, _ = pool.Float64()
	plan.CurrentTotalMonthlyPayment, _ = currentTotal.Float64()
	plan.RecommendedTotalMonthlyPayment, _ = currentTotal.Add(available.Sub(pool)).Float64()
	plan.WeightedPayoffMonthsCurrent = weightedMonths(rows, func(r CardRecommendation) int { return r.CurrentPayoffMonths })
	plan.WeightedPayoffMonthsRecommended = weightedMonths(rows, func(r CardRecommendation) int { return r.RecommendedPayoffMonths })
	return plan, nil
}

func weightedMonths(rows []CardRecommendation, months func(CardRecommendation) int) float64 {
	var weighted, balance float64
	for _, r := range rows {
		weighted += r.CurrentBalance * float64(months(r))
		balance += r.CurrentBalance
	}
	if balance <= 0 {
		return 0
	}
	return weighted / balance
}
