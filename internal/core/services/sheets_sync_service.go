package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/dto"
)

// sheetsSyncService copies export payloads to and from a snapshot store
type sheetsSyncService struct {
	BaseService
	transfer portssvc.LedgerTransferSvc
	store    portsrepo.SnapshotStore
	now      func() time.Time
}

// NewSheetsSyncService creates a new sync service. A nil store yields a
// service whose operations fail with an internal error.
func NewSheetsSyncService(transfer portssvc.LedgerTransferSvc, store portsrepo.SnapshotStore, now func() time.Time) portssvc.SheetsSyncSvc {
	if now == nil {
		now = time.Now
	}
	return &sheetsSyncService{transfer: transfer, store: store, now: now}
}

// Ensure sheetsSyncService implements the SheetsSyncSvc interface
var _ portssvc.SheetsSyncSvc = (*sheetsSyncService)(nil)

// DatasetKey is the snapshot key of an owner's profile.
func DatasetKey(ownerID string) string {
	return "profile:" + ownerID
}

func (s *sheetsSyncService) configured() error {
	if s.store == nil {
		return apperrors.NewAppError(apperrors.KindInternal, "sheets sync is not configured", nil)
	}
	return nil
}

// ExportToSheets appends the owner's current profile as a snapshot row
func (s *sheetsSyncService) ExportToSheets(ctx context.Context, ownerID string) (*dto.SheetsExportResponse, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	payload, err := s.transfer.ExportProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	key := DatasetKey(ownerID)
	exportedAt := s.now().UTC()
	if err := s.store.AppendSnapshot(ctx, key, exportedAt, payload); err != nil {
		s.logOutcome(ctx, ownerID, "sheets-export", err, slog.String("dataset_key", key))
		return nil, err
	}
	s.ownerLogger(ctx, ownerID).Info("Snapshot appended", slog.String("dataset_key", key), slog.Int("bytes", len(payload)))
	return &dto.SheetsExportResponse{DatasetKey: key, ExportedAt: exportedAt, Bytes: len(payload)}, nil
}

// ImportFromSheets applies the newest snapshot exported at or before asOf
func (s *sheetsSyncService) ImportFromSheets(ctx context.Context, ownerID string, asOf time.Time, mode dto.ImportMode) (*domain.Profile, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	key := DatasetKey(ownerID)
	payload, err := s.store.LatestSnapshot(ctx, key, asOf)
	if err != nil {
		s.logOutcome(ctx, ownerID, "sheets-import", err, slog.String("dataset_key", key))
		return nil, err
	}
	return s.transfer.ImportProfile(ctx, ownerID, payload, mode)
}
