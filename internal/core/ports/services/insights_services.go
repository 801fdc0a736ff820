package services

import (
	"context"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/payoff"
	"github.com/SscSPs/household_ledger/internal/core/planning"
	"github.com/SscSPs/household_ledger/internal/dto"
)

// InsightsReaderSvc defines the calculations run over an owner's stored ledger
type InsightsReaderSvc interface {
	Dashboard(ctx context.Context, ownerID string) (*metrics.DashboardMetrics, error)
	MonthOverMonth(ctx context.Context, ownerID string, asOf time.Time) (*metrics.MonthlyBreakdown, error)
	Datapoints(ctx context.Context, ownerID string, asOf time.Time) ([]metrics.DatapointRow, error)
	Summaries(ctx context.Context, ownerID string, asOf time.Time) (*dto.SummariesResponse, error)
	UnifiedRecords(ctx context.Context, ownerID string) ([]metrics.UnifiedRecord, error)
	RiskFindings(ctx context.Context, ownerID string, asOf time.Time) (*dto.RiskFindingsResponse, error)
	Projections(ctx context.Context, ownerID string) (*payoff.Projection, error)
	PlanningCockpit(ctx context.Context, ownerID string, asOf time.Time) (*planning.Insights, error)

	// CardRecommendations plans card payments from the ledger's surplus. A nil
	// cards slice means the ledger's own creditCards.
	CardRecommendations(ctx context.Context, ownerID string, cards []domain.CreditCard) (*payoff.CardPlan, error)
}

// PayoffCalculatorSvc defines stateless payoff calculations
type PayoffCalculatorSvc interface {
	ComparePayoff(ctx context.Context, req dto.ComparePayoffRequest) (*payoff.Comparison, error)
}

// InsightsSvcFacade combines all insight-related service interfaces
type InsightsSvcFacade interface {
	InsightsReaderSvc
	PayoffCalculatorSvc
}
