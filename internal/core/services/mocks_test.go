package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/collections"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, ownerID string, profile domain.Profile, entries ...domain.AuditTimelineEntry) error {
	args := m.Called(ctx, ownerID, profile, entries)
	return args.Error(0)
}

// --- Mock AuditTimelineRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.AuditTimelineEntry, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.AuditTimelineEntry), token, args.Error(2)
}

func (m *MockAuditRepository) ListAllAuditEntries(ctx context.Context, ownerID string) ([]domain.AuditTimelineEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditTimelineEntry), args.Error(1)
}

// --- Mock SnapshotStore ---
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) AppendSnapshot(ctx context.Context, datasetKey string, exportedAt time.Time, payload []byte) error {
	return m.Called(ctx, datasetKey, exportedAt, payload).Error(0)
}

func (m *MockSnapshotStore) LatestSnapshot(ctx context.Context, datasetKey string, asOf time.Time) ([]byte, error) {
	args := m.Called(ctx, datasetKey, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Mock LedgerReaderSvc ---
type MockLedgerReader struct {
	mock.Mock
}

func (m *MockLedgerReader) GetLedger(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerReader) ListRecords(ctx context.Context, ownerID string, collection domain.Collection, criteria collections.Criteria) ([]domain.Record, error) {
	args := m.Called(ctx, ownerID, collection, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockLedgerReader) GetPersonaImpact(ctx context.Context, ownerID string, name string) (*collections.PersonaImpactSummary, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collections.PersonaImpactSummary), args.Error(1)
}

func (m *MockLedgerReader) ListAuditEntries(ctx context.Context, ownerID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditResponse), args.Error(1)
}

// --- Mock LedgerTransferSvc ---
type MockLedgerTransfer struct {
	mock.Mock
}

func (m *MockLedgerTransfer) ExportProfile(ctx context.Context, ownerID string) ([]byte, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLedgerTransfer) ImportProfile(ctx context.Context, ownerID string, payload []byte, mode dto.ImportMode) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, payload, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
