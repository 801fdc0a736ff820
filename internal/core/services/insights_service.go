package services

import (
	"context"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/payoff"
	"github.com/SscSPs/household_ledger/internal/core/planning"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/core/risk"
	"github.com/SscSPs/household_ledger/internal/dto"
)

// insightsService runs the calculation engine over stored ledgers
type insightsService struct {
	BaseService
	ledgers portssvc.LedgerReaderSvc
}

// NewInsightsService creates a new insights service reading ledgers through ledgers
func NewInsightsService(ledgers portssvc.LedgerReaderSvc) portssvc.InsightsSvcFacade {
	return &insightsService{ledgers: ledgers}
}

// Ensure insightsService implements the InsightsSvcFacade interface
var _ portssvc.InsightsSvcFacade = (*insightsService)(nil)

// calculate loads the owner's ledger and runs fn over it.
func calculate[T any](ctx context.Context, s *insightsService, ownerID, name string, fn func(domain.Ledger) (T, error)) (*T, error) {
	l, err := s.ledgers.GetLedger(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out, err := fn(*l)
	if err != nil {
		s.logOutcome(ctx, ownerID, name, err)
		return nil, err
	}
	return &out, nil
}

func (s *insightsService) Dashboard(ctx context.Context, ownerID string) (*metrics.DashboardMetrics, error) {
	return calculate(ctx, s, ownerID, "dashboard", metrics.Dashboard)
}

func (s *insightsService) MonthOverMonth(ctx context.Context, ownerID string, asOf time.Time) (*metrics.MonthlyBreakdown, error) {
	return calculate(ctx, s, ownerID, "month-over-month", func(l domain.Ledger) (metrics.MonthlyBreakdown, error) {
		return metrics.MonthOverMonth(l, asOf)
	})
}

func (s *insightsService) Datapoints(ctx context.Context, ownerID string, asOf time.Time) ([]metrics.DatapointRow, error) {
	rows, err := calculate(ctx, s, ownerID, "datapoints", func(l domain.Ledger) ([]metrics.DatapointRow, error) {
		return metrics.DatapointRows(l, asOf)
	})
	if err != nil {
		return nil, err
	}
	return *rows, nil
}

// Summaries bundles the per-section summaries of the ledger
func (s *insightsService) Summaries(ctx context.Context, ownerID string, asOf time.Time) (*dto.SummariesResponse, error) {
	return calculate(ctx, s, ownerID, "summaries", func(l domain.Ledger) (dto.SummariesResponse, error) {
		var (
			res dto.SummariesResponse
			err error
		)
		if res.IncomeExpense, err = metrics.IncomeExpenseSummary(l); err != nil {
			return res, err
		}
		if res.SavingsStorage, err = metrics.SavingsStorage(l, asOf); err != nil {
			return res, err
		}
		if res.EmergencyFund, err = metrics.EmergencyFund(l); err != nil {
			return res, err
		}
		if res.RecommendedSavings, err = metrics.RecommendedSavings(l, asOf); err != nil {
			return res, err
		}
		if res.Goals, err = metrics.GoalStatusSummary(l.Goals); err != nil {
			return res, err
		}
		res.CreditCards, err = metrics.CreditCardSummary(l.CreditCards)
		return res, err
	})
}

func (s *insightsService) UnifiedRecords(ctx context.Context, ownerID string) ([]metrics.UnifiedRecord, error) {
	rows, err := calculate(ctx, s, ownerID, "unified-records", metrics.UnifiedRecords)
	if err != nil {
		return nil, err
	}
	return *rows, nil
}

func (s *insightsService) RiskFindings(ctx context.Context, ownerID string, asOf time.Time) (*dto.RiskFindingsResponse, error) {
	return calculate(ctx, s, ownerID, "risk", func(l domain.Ledger) (dto.RiskFindingsResponse, error) {
		findings, err := risk.Findings(l, asOf)
		if err != nil {
			return dto.RiskFindingsResponse{}, err
		}
		return dto.RiskFindingsResponse{Level: risk.Level(findings), Findings: findings}, nil
	})
}

func (s *insightsService) Projections(ctx context.Context, ownerID string) (*payoff.Projection, error) {
	return calculate(ctx, s, ownerID, "projections", payoff.ProjectNetWorth)
}

func (s *insightsService) PlanningCockpit(ctx context.Context, ownerID string, asOf time.Time) (*planning.Insights, error) {
	return calculate(ctx, s, ownerID, "planning", func(l domain.Ledger) (planning.Insights, error) {
		return planning.Cockpit(l, asOf)
	})
}

// CardRecommendations plans card payments; nil cards means the ledger's own
func (s *insightsService) CardRecommendations(ctx context.Context, ownerID string, cards []domain.CreditCard) (*payoff.CardPlan, error) {
	return calculate(ctx, s, ownerID, "card-recommendations", func(l domain.Ledger) (payoff.CardPlan, error) {
		if cards == nil {
			cards = l.CreditCards
		}
		return payoff.RecommendCardPayments(l, cards)
	})
}

// ComparePayoff compares a base payment with an accelerated one
func (s *insightsService) ComparePayoff(ctx context.Context, req dto.ComparePayoffRequest) (*payoff.Comparison, error) {
	cmp, err := payoff.ComparePayoff(req.Balance, req.Payment, req.ExtraPayment, req.InterestRatePercent)
	if err != nil {
		s.logOutcome(ctx, "", "compare-payoff", err)
		return nil, err
	}
	return &cmp, nil
}
