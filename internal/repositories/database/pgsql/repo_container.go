package pgsql

import (
	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the postgres repositories. snapshotStore may be
// nil when sheets sync is not configured.
func NewRepositoryProvider(dbPool *pgxpool.Pool, snapshotStore portsrepo.SnapshotStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo:   newPgxProfileRepository(dbPool),
		AuditRepo:     newPgxAuditTimelineRepository(dbPool),
		SnapshotStore: snapshotStore,
	}
}
