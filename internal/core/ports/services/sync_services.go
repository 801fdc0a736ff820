package services

import (
	"context"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/dto"
)

// SheetsSyncSvc copies complete profiles to and from a spreadsheet
type SheetsSyncSvc interface {
	// ExportToSheets appends the owner's current profile as a new snapshot row.
	ExportToSheets(ctx context.Context, ownerID string) (*dto.SheetsExportResponse, error)

	// ImportFromSheets applies the newest snapshot exported at or before asOf.
	ImportFromSheets(ctx context.Context, ownerID string, asOf time.Time, mode dto.ImportMode) (*domain.Profile, error)
}
