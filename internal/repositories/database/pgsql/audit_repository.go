package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/household_ledger/internal/models"
	"github.com/SscSPs/household_ledger/internal/utils/mapping"
	"github.com/SscSPs/household_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditTimelineRepository struct {
	BaseRepository
}

// newPgxAuditTimelineRepository creates a new repository for audit timeline entries.
func newPgxAuditTimelineRepository(pool *pgxpool.Pool) portsrepo.AuditTimelineRepositoryFacade {
	return &PgxAuditTimelineRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditTimelineRepositoryFacade = (*PgxAuditTimelineRepository)(nil)

// ListAuditEntries retrieves a page of an owner's entries, newest first.
func (r *PgxAuditTimelineRepository) ListAuditEntries(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.AuditTimelineEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT owner_id, entry_id, recorded_at, raw_timestamp, context_tag
		FROM audit_timeline_entries
		WHERE owner_id = $1
	`
	// entry_id breaks ties between entries recorded at the same instant.
	orderByClause := `ORDER BY recorded_at DESC, entry_id DESC`
	args := []interface{}{ownerID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.ParseCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(apperrors.KindValidation, "invalid nextToken", decodeErr)
		}
		query += ` AND (recorded_at, entry_id) < ($2, $3)`
		args = append(args, cursor.RecordedAt, cursor.EntryID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(apperrors.KindInternal, "failed to query audit entries for owner "+ownerID, err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditTimelineEntry, error) {
		var m models.AuditTimelineEntry
		err := row.Scan(&m.OwnerID, &m.EntryID, &m.RecordedAt, &m.RawTimestamp, &m.ContextTag)
		return m, err
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(apperrors.KindInternal, "failed to scan audit entries for owner "+ownerID, err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		// The token points to the last item included in this page.
		last := ms[limit-1]
		token := pagination.Cursor{RecordedAt: last.RecordedAt, EntryID: last.EntryID}.Token()
		nextTokenVal = &token
		ms = ms[:limit]
	}

	entries, err := mapping.ToDomainAuditEntrySlice(ms)
	if err != nil {
		return nil, nil, err
	}
	return entries, nextTokenVal, nil
}

// ListAllAuditEntries retrieves every entry of an owner with its snapshot, oldest first.
func (r *PgxAuditTimelineRepository) ListAllAuditEntries(ctx context.Context, ownerID string) ([]domain.AuditTimelineEntry, error) {
	query := `
		SELECT owner_id, entry_id, recorded_at, raw_timestamp, context_tag, snapshot
		FROM audit_timeline_entries
		WHERE owner_id = $1
		ORDER BY recorded_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.KindInternal, "failed to query audit timeline for owner "+ownerID, err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditTimelineEntry, error) {
		var m models.AuditTimelineEntry
		err := row.Scan(&m.OwnerID, &m.EntryID, &m.RecordedAt, &m.RawTimestamp, &m.ContextTag, &m.Snapshot)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.KindInternal, "failed to scan audit timeline for owner "+ownerID, err)
	}
	return mapping.ToDomainAuditEntrySlice(ms)
}
