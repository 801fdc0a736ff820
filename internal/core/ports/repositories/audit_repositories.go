package repositories

import (
	"context"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// AuditTimelineReader defines read operations for the audit timeline.
type AuditTimelineReader interface {
	// ListAuditEntries retrieves up to limit entries of an owner, newest first,
	// continuing after nextToken when one is given. Snapshots are not loaded.
	// The returned token is nil on the last page.
	ListAuditEntries(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.AuditTimelineEntry, *string, error)

	// ListAllAuditEntries retrieves every entry of an owner with its snapshot,
	// oldest first.
	ListAllAuditEntries(ctx context.Context, ownerID string) ([]domain.AuditTimelineEntry, error)
}

// AuditTimelineRepositoryFacade combines all audit-related repository interfaces
type AuditTimelineRepositoryFacade interface {
	AuditTimelineReader
}
