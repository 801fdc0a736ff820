package repositories

import (
	"context"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// ProfileReader defines read operations for stored ledger profiles.
type ProfileReader interface {
	// FindProfileByOwner retrieves the collections and UI preferences of an
	// owner's profile. The audit timeline is not loaded; see AuditTimelineReader.
	// Returns apperrors.ErrNotFound when the owner has never saved a profile.
	FindProfileByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
}

// ProfileWriter defines write operations for stored ledger profiles.
type ProfileWriter interface {
	// SaveProfile upserts the owner's collections and UI preferences and
	// upserts the given audit entries, all in one transaction.
	SaveProfile(ctx context.Context, ownerID string, profile domain.Profile, entries ...domain.AuditTimelineEntry) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
