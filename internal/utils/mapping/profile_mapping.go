package mapping

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/models"
)

// ToModelLedgerProfile converts a domain Profile to its stored row. The audit
// timeline is stored separately, see ToModelAuditEntry.
func ToModelLedgerProfile(ownerID string, p domain.Profile, now time.Time) (models.LedgerProfile, error) {
	collections, err := json.Marshal(p.Collections)
	if err != nil {
		return models.LedgerProfile{}, apperrors.NewAppError(apperrors.KindJSONStringify, "could not encode collections", err)
	}
	m := models.LedgerProfile{
		OwnerID:       ownerID,
		Collections:   collections,
		SchemaVersion: p.Collections.SchemaVersion,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if p.UIPreferences != nil {
		m.UIPreferences, err = json.Marshal(p.UIPreferences)
		if err != nil {
			return models.LedgerProfile{}, apperrors.NewAppError(apperrors.KindJSONStringify, "could not encode ui preferences", err)
		}
	}
	return m, nil
}

// ToDomainProfile converts a stored row to a domain Profile without its
// audit timeline.
func ToDomainProfile(m models.LedgerProfile) (domain.Profile, error) {
	p := domain.Profile{AuditTimelineEntries: []domain.AuditTimelineEntry{}}
	if err := json.Unmarshal(m.Collections, &p.Collections); err != nil {
		return domain.Profile{}, apperrors.NewAppError(apperrors.KindJSONParse, "stored collections are corrupt for owner "+m.OwnerID, err)
	}
	if len(m.UIPreferences) > 0 {
		p.UIPreferences = &domain.UIPreferences{}
		if err := json.Unmarshal(m.UIPreferences, p.UIPreferences); err != nil {
			return domain.Profile{}, apperrors.NewAppError(apperrors.KindJSONParse, "stored ui preferences are corrupt for owner "+m.OwnerID, err)
		}
	}
	return p, nil
}

// ToModelAuditEntry converts a domain audit entry to its stored row.
func ToModelAuditEntry(ownerID string, e domain.AuditTimelineEntry) (models.AuditTimelineEntry, error) {
	m := models.AuditTimelineEntry{
		OwnerID:      ownerID,
		EntryID:      e.ID,
		RawTimestamp: e.Timestamp,
		ContextTag:   e.ContextTag,
	}
	if t, ok := e.Time(); ok {
		m.RecordedAt = t.UTC()
	}
	if e.Snapshot != nil {
		snapshot, err := json.Marshal(e.Snapshot)
		if err != nil {
			return models.AuditTimelineEntry{}, apperrors.NewAppError(apperrors.KindJSONStringify, "could not encode snapshot of audit entry "+e.ID, err)
		}
		m.Snapshot = snapshot
	}
	return m, nil
}

// ToDomainAuditEntry converts a stored row to a domain audit entry.
func ToDomainAuditEntry(m models.AuditTimelineEntry) (domain.AuditTimelineEntry, error) {
	e := domain.AuditTimelineEntry{
		ID:         m.EntryID,
		Timestamp:  m.RawTimestamp,
		ContextTag: m.ContextTag,
	}
	if len(m.Snapshot) > 0 {
		e.Snapshot = &domain.Ledger{}
		if err := json.Unmarshal(m.Snapshot, e.Snapshot); err != nil {
			return domain.AuditTimelineEntry{}, apperrors.NewAppError(apperrors.KindJSONParse, "stored snapshot is corrupt for audit entry "+m.EntryID, err)
		}
	}
	return e, nil
}

// ToDomainAuditEntrySlice converts stored rows to domain audit entries.
func ToDomainAuditEntrySlice(ms []models.AuditTimelineEntry) ([]domain.AuditTimelineEntry, error) {
	entries := make([]domain.AuditTimelineEntry, len(ms))
	for i, m := range ms {
		e, err := ToDomainAuditEntry(m)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}
