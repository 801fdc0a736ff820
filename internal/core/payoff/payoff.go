// Package payoff holds amortization, payoff comparison, credit-card payment
// allocation and net-worth projection math.
package payoff

import (
	"math"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/validation"
	"github.com/shopspring/decimal"
)

// maxScheduleMonths bounds a simulated schedule at 100 years.
const maxScheduleMonths = 1200

func monthlyRate(ratePercent float64) float64 {
	return ratePercent / 1200
}

func validateLoan(balance, payment, ratePercent float64) error {
	if _, err := validation.ValidateMonetaryValue(balance, "balance"); err != nil {
		return err
	}
	if _, err := validation.ValidateMonetaryValue(payment, "payment"); err != nil {
		return err
	}
	if _, err := validation.ValidateMonetaryValue(ratePercent, "interestRatePercent"); err != nil {
		return err
	}
	if payment <= 0 {
		return apperrors.NewValidationError("payment", "payment must be greater than 0")
	}
	if balance > 0 && payment <= balance*monthlyRate(ratePercent) {
		return apperrors.NewValidationError("payment", "payment does not cover the monthly interest, the balance never amortizes")
	}
	return nil
}

// EstimatePayoffMonths returns the number of monthly payments needed to
// clear balance at the given annual rate, using the closed-form annuity
// formula n = -ln(1 - iB/P) / ln(1 + i).
func EstimatePayoffMonths(balance, payment, ratePercent float64) (int, error) {
	if err := validateLoan(balance, payment, ratePercent); err != nil {
		return 0, err
	}
	if balance == 0 {
		return 0, nil
	}
	i := monthlyRate(ratePercent)
	if i == 0 {
		return int(math.Ceil(balance / payment)), nil
	}
	n := -math.Log(1-i*balance/payment) / math.Log(1+i)
	return int(math.Ceil(n - 1e-9)), nil
}

// Schedule is the outcome of paying a balance down month by month.
type Schedule struct {
	Months        int     `json:"months"`
	TotalInterest float64 `json:"totalInterest"`
	TotalPaid     float64 `json:"totalPaid"`
}

// SimulateSchedule pays balance down with interest rounded to cents each month.
func SimulateSchedule(balance, payment, ratePercent float64) (Schedule, error) {
	if err := validateLoan(balance, payment, ratePercent); err != nil {
		return Schedule{}, err
	}
	rate := decimal.NewFromFloat(monthlyRate(ratePercent))
	pay := decimal.NewFromFloat(payment)
	bal := decimal.NewFromFloat(balance)
	interest, paid := decimal.Zero, decimal.Zero

	months := 0
	for bal.IsPositive() && months < maxScheduleMonths {
		accrued := bal.Mul(rate).Round(2)
		bal = bal.Add(accrued)
		p := decimal.Min(pay, bal)
		bal = bal.Sub(p)
		interest = interest.Add(accrued)
		paid = paid.Add(p)
		months++
	}
	ti, _ := interest.Float64()
	tp, _ := paid.Float64()
	return Schedule{Months: months, TotalInterest: ti, TotalPaid: tp}, nil
}

// Comparison contrasts paying the base amount with paying base plus extra.
type Comparison struct {
	BaseMonths          int     `json:"baseMonths"`
	AcceleratedMonths   int     `json:"acceleratedMonths"`
	MonthsSaved         int     `json:"monthsSaved"`
	BaseInterest        float64 `json:"baseInterest"`
	AcceleratedInterest float64 `json:"acceleratedInterest"`
	InterestSaved       float64 `json:"interestSaved"`
}

// ComparePayoff compares payment with payment+extra on the same balance.
func ComparePayoff(balance, payment, extra, ratePercent float64) (Comparison, error) {
	if _, err := validation.ValidateMonetaryValue(extra, "extraPayment"); err != nil {
		return Comparison{}, err
	}
	baseMonths, err := EstimatePayoffMonths(balance, payment, ratePercent)
	if err != nil {
		return Comparison{}, err
	}
	fastMonths, err := EstimatePayoffMonths(balance, payment+extra, ratePercent)
	if err != nil {
		return Comparison{}, err
	}
	base, err := SimulateSchedule(balance, payment, ratePercent)
	if err != nil {
		return Comparison{}, err
	}
	fast, err := SimulateSchedule(balance, payment+extra, ratePercent)
	if err != nil {
		return Comparison{}, err
	}

	saved, _ := decimal.NewFromFloat(base.TotalInterest).Sub(decimal.NewFromFloat(fast.TotalInterest)).Float64()
	return Comparison{
		BaseMonths:          baseMonths,
		AcceleratedMonths:   fastMonths,
		MonthsSaved:         max(baseMonths-fastMonths, 0),
		BaseInterest:        base.TotalInterest,
		AcceleratedInterest: fast.TotalInterest,
		InterestSaved:       math.Max(saved, 0),
	}, nil
}
