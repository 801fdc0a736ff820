package dto

import (
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/risk"
)

// AsOfParams carries the reference date of month-bucketed insights.
type AsOfParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// AsOfTime returns the requested date, or now when none was given.
func (p AsOfParams) AsOfTime(now time.Time) time.Time {
	if p.AsOf == "" {
		return now.UTC()
	}
	t, err := time.Parse(domain.DateLayout, p.AsOf)
	if err != nil {
		return now.UTC()
	}
	return t
}

// ComparePayoffRequest defines a base and an accelerated payment for one balance.
type ComparePayoffRequest struct {
	Balance             float64 `json:"balance"`
	Payment             float64 `json:"payment"`
	ExtraPayment        float64 `json:"extraPayment"`
	InterestRatePercent float64 `json:"interestRatePercent"`
}

// CardRecommendationRequest lists the cards to plan payments for. When
// CreditCards is omitted the ledger's own cards are used.
type CardRecommendationRequest struct {
	CreditCards []domain.CreditCard `json:"creditCards"`
}

// RiskFindingsResponse is the risk scan of a ledger.
type RiskFindingsResponse struct {
	Level    string         `json:"level"`
	Findings []risk.Finding `json:"findings"`
}

// SummariesResponse bundles the ledger summaries shown next to the dashboard.
type SummariesResponse struct {
	IncomeExpense      metrics.IncomeExpense         `json:"incomeExpense"`
	SavingsStorage     metrics.SavingsStorageSummary `json:"savingsStorage"`
	EmergencyFund      metrics.EmergencyFundSummary  `json:"emergencyFund"`
	RecommendedSavings metrics.SavingsRecommendation `json:"recommendedSavings"`
	Goals              metrics.GoalStatusCounts      `json:"goals"`
	CreditCards        metrics.CreditCardTotals      `json:"creditCards"`
}
