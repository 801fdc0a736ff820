package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/household_ledger/internal/models"
	"github.com/SscSPs/household_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProfileRepository struct {
	BaseRepository
	now func() time.Time
}

// newPgxProfileRepository creates a new repository for ledger profiles.
func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{
		BaseRepository: BaseRepository{Pool: pool},
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

// FindProfileByOwner retrieves the stored collections and UI preferences of an owner.
func (r *PgxProfileRepository) FindProfileByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	query := `
		SELECT owner_id, collections, ui_preferences, schema_version, created_at, last_updated_at
		FROM ledger_profiles
		WHERE owner_id = $1;
	`
	var m models.LedgerProfile
	err := r.Pool.QueryRow(ctx, query, ownerID).Scan(
		&m.OwnerID,
		&m.Collections,
		&m.UIPreferences,
		&m.SchemaVersion,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(apperrors.KindInternal, "failed to find profile for owner "+ownerID, err)
	}

	p, err := mapping.ToDomainProfile(m)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const upsertProfileQuery = `
	INSERT INTO ledger_profiles (owner_id, collections, ui_preferences, schema_version, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (owner_id) DO UPDATE SET
		collections = EXCLUDED.collections,
		ui_preferences = EXCLUDED.ui_preferences,
		schema_version = EXCLUDED.schema_version,
		last_updated_at = EXCLUDED.last_updated_at;
`

const upsertAuditEntryQuery = `
	INSERT INTO audit_timeline_entries (owner_id, entry_id, recorded_at, raw_timestamp, context_tag, snapshot)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (owner_id, entry_id) DO UPDATE SET
		recorded_at = EXCLUDED.recorded_at,
		raw_timestamp = EXCLUDED.raw_timestamp,
		context_tag = EXCLUDED.context_tag,
		snapshot = EXCLUDED.snapshot;
`

// SaveProfile upserts the profile row and the given audit entries in one transaction.
func (r *PgxProfileRepository) SaveProfile(ctx context.Context, ownerID string, profile domain.Profile, entries ...domain.AuditTimelineEntry) error {
	m, err := mapping.ToModelLedgerProfile(ownerID, profile, r.now().UTC())
	if err != nil {
		return err
	}

	return r.withTx(ctx, ownerID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, upsertProfileQuery,
			m.OwnerID,
			m.Collections,
			m.UIPreferences,
			m.SchemaVersion,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
		if err != nil {
			return apperrors.NewAppError(apperrors.KindInternal, "failed to save profile for owner "+ownerID, err)
		}
		if len(entries) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, e := range entries {
			me, err := mapping.ToModelAuditEntry(ownerID, e)
			if err != nil {
				return err
			}
			batch.Queue(upsertAuditEntryQuery, me.OwnerID, me.EntryID, me.RecordedAt, me.RawTimestamp, me.ContextTag, me.Snapshot)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(apperrors.KindInternal, "failed to save audit entries for owner "+ownerID, err)
		}
		return nil
	})
}
