package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/collections"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/payoff"
	"github.com/SscSPs/household_ledger/internal/core/planning"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ledger(args mock.Arguments) (*domain.Ledger, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) GetLedger(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID))
}
func (m *MockLedgerService) ListRecords(ctx context.Context, ownerID string, collection domain.Collection, criteria collections.Criteria) ([]domain.Record, error) {
	args := m.Called(ctx, ownerID, collection, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}
func (m *MockLedgerService) GetPersonaImpact(ctx context.Context, ownerID string, name string) (*collections.PersonaImpactSummary, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collections.PersonaImpactSummary), args.Error(1)
}
func (m *MockLedgerService) ListAuditEntries(ctx context.Context, ownerID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditResponse), args.Error(1)
}
func (m *MockLedgerService) ReplaceLedger(ctx context.Context, ownerID string, ledger domain.Ledger) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, ledger))
}
func (m *MockLedgerService) AppendRecord(ctx context.Context, ownerID string, collection domain.Collection, record domain.Record) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, collection, record))
}
func (m *MockLedgerService) AppendGoal(ctx context.Context, ownerID string, goal domain.Goal) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, goal))
}
func (m *MockLedgerService) AppendCreditCard(ctx context.Context, ownerID string, card domain.CreditCard) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, card))
}
func (m *MockLedgerService) AppendAssetHolding(ctx context.Context, ownerID string, holding domain.AssetHolding) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, holding))
}
func (m *MockLedgerService) AppendNote(ctx context.Context, ownerID string, note domain.Note) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, note))
}
func (m *MockLedgerService) AddPersona(ctx context.Context, ownerID string, persona domain.Persona) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, persona))
}
func (m *MockLedgerService) RenamePersona(ctx context.Context, ownerID string, name string, req dto.RenamePersonaRequest) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, name, req))
}
func (m *MockLedgerService) DeletePersona(ctx context.Context, ownerID string, name string, policy collections.DeletePolicy, target string) (*domain.Ledger, error) {
	return m.ledger(m.Called(ctx, ownerID, name, policy, target))
}
func (m *MockLedgerService) ReconcileRecurring(ctx context.Context, ownerID string) (*collections.ReconcileResult, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collections.ReconcileResult), args.Error(1)
}
func (m *MockLedgerService) UpdatePreferences(ctx context.Context, ownerID string, prefs domain.UIPreferences) error {
	return m.Called(ctx, ownerID, prefs).Error(0)
}
func (m *MockLedgerService) ExportProfile(ctx context.Context, ownerID string) ([]byte, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockLedgerService) ImportProfile(ctx context.Context, ownerID string, payload []byte, mode dto.ImportMode) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, payload, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock InsightsService ---
type MockInsightsService struct {
	mock.Mock
}

func (m *MockInsightsService) Dashboard(ctx context.Context, ownerID string) (*metrics.DashboardMetrics, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.DashboardMetrics), args.Error(1)
}
func (m *MockInsightsService) MonthOverMonth(ctx context.Context, ownerID string, asOf time.Time) (*metrics.MonthlyBreakdown, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.MonthlyBreakdown), args.Error(1)
}
func (m *MockInsightsService) Datapoints(ctx context.Context, ownerID string, asOf time.Time) ([]metrics.DatapointRow, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.DatapointRow), args.Error(1)
}
func (m *MockInsightsService) Summaries(ctx context.Context, ownerID string, asOf time.Time) (*dto.SummariesResponse, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SummariesResponse), args.Error(1)
}
func (m *MockInsightsService) UnifiedRecords(ctx context.Context, ownerID string) ([]metrics.UnifiedRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.UnifiedRecord), args.Error(1)
}
func (m *MockInsightsService) RiskFindings(ctx context.Context, ownerID string, asOf time.Time) (*dto.RiskFindingsResponse, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RiskFindingsResponse), args.Error(1)
}
func (m *MockInsightsService) Projections(ctx context.Context, ownerID string) (*payoff.Projection, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoff.Projection), args.Error(1)
}
func (m *MockInsightsService) PlanningCockpit(ctx context.Context, ownerID string, asOf time.Time) (*planning.Insights, error) {
	args := m.Called(ctx, ownerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Insights), args.Error(1)
}
func (m *MockInsightsService) CardRecommendations(ctx context.Context, ownerID string, cards []domain.CreditCard) (*payoff.CardPlan, error) {
	args := m.Called(ctx, ownerID, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoff.CardPlan), args.Error(1)
}
func (m *MockInsightsService) ComparePayoff(ctx context.Context, req dto.ComparePayoffRequest) (*payoff.Comparison, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoff.Comparison), args.Error(1)
}

var _ portssvc.InsightsSvcFacade = (*MockInsightsService)(nil)

// --- Mock SheetsSyncService ---
type MockSheetsSyncService struct {
	mock.Mock
}

func (m *MockSheetsSyncService) ExportToSheets(ctx context.Context, ownerID string) (*dto.SheetsExportResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SheetsExportResponse), args.Error(1)
}
func (m *MockSheetsSyncService) ImportFromSheets(ctx context.Context, ownerID string, asOf time.Time, mode dto.ImportMode) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, asOf, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

var _ portssvc.SheetsSyncSvc = (*MockSheetsSyncService)(nil)
