package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/collections"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/merge"
	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/core/profile"
	"github.com/SscSPs/household_ledger/internal/core/validation"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/google/uuid"
)

// Context tags written to the audit timeline.
const (
	TagAddRecord          = "add-record"
	TagAddGoal            = "add-goal"
	TagAddCreditCard      = "add-credit-card"
	TagAddAssetHolding    = "add-asset-holding"
	TagAddNote            = "add-note"
	TagAddPersona         = "add-persona"
	TagRenamePersona      = "rename-persona"
	TagDeletePersona      = "delete-persona"
	TagReconcileRecurring = "reconcile-recurring"
	TagReplaceLedger      = "replace-ledger"
	TagImport             = "import"
)

// ledgerService implements the portssvc.LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	profileRepo    portsrepo.ProfileRepositoryFacade
	auditRepo      portsrepo.AuditTimelineRepositoryFacade
	now            func() time.Time
	newID          func() string
	recurringSeeds []domain.Record
}

// LedgerServiceOption is a function that configures a ledgerService
type LedgerServiceOption func(*ledgerService)

// WithClock sets the time source used for update stamps and audit entries
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithIDGenerator sets the generator of audit entry IDs
func WithIDGenerator(newID func() string) LedgerServiceOption {
	return func(s *ledgerService) {
		s.newID = newID
	}
}

// WithRecurringSeeds sets the baseline rows seeded by ReconcileRecurring
func WithRecurringSeeds(seeds []domain.Record) LedgerServiceOption {
	return func(s *ledgerService) {
		s.recurringSeeds = seeds
	}
}

// NewLedgerService creates a new ledger service
func NewLedgerService(profileRepo portsrepo.ProfileRepositoryFacade, auditRepo portsrepo.AuditTimelineRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	s := &ledgerService{
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// load returns the owner's stored profile, or a new one.
func (s *ledgerService) load(ctx context.Context, ownerID string) (domain.Profile, error) {
	p, err := s.profileRepo.FindProfileByOwner(ctx, ownerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.ownerLogger(ctx, ownerID).Debug("No stored profile, starting from the default ledger")
		return domain.NewProfile(), nil
	}
	if err != nil {
		s.logOutcome(ctx, ownerID, "load-profile", err)
		return domain.Profile{}, err
	}
	p.Collections = profile.Backfill(p.Collections)
	return *p, nil
}

// commit stores next as the owner's ledger together with an audit entry
// holding its snapshot.
func (s *ledgerService) commit(ctx context.Context, ownerID string, p domain.Profile, next domain.Ledger, tag string) (*domain.Ledger, error) {
	entry := s.auditEntry(next, tag)
	p.Collections = next
	if err := s.profileRepo.SaveProfile(ctx, ownerID, p, entry); err != nil {
		s.logOutcome(ctx, ownerID, "save-ledger", err, slog.String("context_tag", tag))
		return nil, err
	}
	s.ownerLogger(ctx, ownerID).Info("Ledger saved", slog.String("context_tag", tag), slog.String("audit_entry_id", entry.ID))
	return &next, nil
}

func (s *ledgerService) auditEntry(l domain.Ledger, tag string) domain.AuditTimelineEntry {
	snapshot := l.Clone()
	return domain.AuditTimelineEntry{
		ID:         s.newID(),
		Timestamp:  collections.Timestamp(s.now()),
		ContextTag: tag,
		Snapshot:   &snapshot,
	}
}

// mutate loads the ledger, applies fn and commits the result under tag.
func (s *ledgerService) mutate(ctx context.Context, ownerID, tag string, fn func(domain.Ledger) (domain.Ledger, error)) (*domain.Ledger, error) {
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	next, err := fn(p.Collections)
	if err != nil {
		s.logOutcome(ctx, ownerID, tag, err)
		return nil, err
	}
	return s.commit(ctx, ownerID, p, next, tag)
}

// GetLedger returns the owner's ledger
func (s *ledgerService) GetLedger(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &p.Collections, nil
}

// ListRecords returns the filtered and sorted rows of a record collection
func (s *ledgerService) ListRecords(ctx context.Context, ownerID string, collection domain.Collection, criteria collections.Criteria) ([]domain.Record, error) {
	if !collection.IsRecordCollection() {
		return nil, apperrors.NewValidationError("collection", "'"+string(collection)+"' does not hold records")
	}
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return collections.FilterAndSort(p.Collections.Records(collection), criteria)
}

// GetPersonaImpact counts the records referencing a persona
func (s *ledgerService) GetPersonaImpact(ctx context.Context, ownerID string, name string) (*collections.PersonaImpactSummary, error) {
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	impact, err := collections.PersonaImpact(p.Collections, name)
	if err != nil {
		return nil, err
	}
	return &impact, nil
}

// ListAuditEntries returns a page of the owner's audit timeline, newest first
func (s *ledgerService) ListAuditEntries(ctx context.Context, ownerID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.auditRepo.ListAuditEntries(ctx, ownerID, limit, params.NextToken)
	if err != nil {
		s.logOutcome(ctx, ownerID, "list-audit", err)
		return nil, err
	}
	return &dto.ListAuditResponse{
		Entries:   dto.ToAuditEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ReplaceLedger stores ledger in place of the owner's current one
func (s *ledgerService) ReplaceLedger(ctx context.Context, ownerID string, ledger domain.Ledger) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagReplaceLedger, func(domain.Ledger) (domain.Ledger, error) {
		if ledger.SchemaVersion > domain.CurrentSchemaVersion {
			return domain.Ledger{}, apperrors.NewValidationError("schemaVersion",
				fmt.Sprintf("schema version %d is newer than supported version %d", ledger.SchemaVersion, domain.CurrentSchemaVersion))
		}
		if err := validation.ValidateLedger(ledger); err != nil {
			return domain.Ledger{}, err
		}
		return profile.Backfill(ledger.Clone()), nil
	})
}

// AppendRecord validates and appends a record to a record collection
func (s *ledgerService) AppendRecord(ctx context.Context, ownerID string, collection domain.Collection, record domain.Record) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagAddRecord, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.AppendRecord(l, collection, record, s.now())
	})
}

// AppendGoal validates and appends a goal
func (s *ledgerService) AppendGoal(ctx context.Context, ownerID string, goal domain.Goal) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagAddGoal, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.AppendGoal(l, goal, s.now())
	})
}

// AppendCreditCard validates and appends a credit card
func (s *ledgerService) AppendCreditCard(ctx context.Context, ownerID string, card domain.CreditCard) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagAddCreditCard, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.AppendCreditCard(l, card, s.now())
	})
}

// AppendAssetHolding validates and appends an asset holding
func (s *ledgerService) AppendAssetHolding(ctx context.Context, ownerID string, holding domain.AssetHolding) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagAddAssetHolding, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.AppendAssetHolding(l, holding, s.now())
	})
}

// AppendNote validates and appends a note
func (s *ledgerService) AppendNote(ctx context.Context, ownerID string, note domain.Note) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagAddNote, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.AppendNote(l, note, s.now())
	})
}

// AddPersona adds a persona with a unique name
func (s *ledgerService) AddPersona(ctx context.Context, ownerID string, persona domain.Persona) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagAddPersona, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.AddPersona(l, persona)
	})
}

// RenamePersona renames a persona and every record referencing it
func (s *ledgerService) RenamePersona(ctx context.Context, ownerID string, name string, req dto.RenamePersonaRequest) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagRenamePersona, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.RenamePersona(l, name, req.NewName, req.ToPatch())
	})
}

// DeletePersona removes a persona, reassigning or deleting its records
func (s *ledgerService) DeletePersona(ctx context.Context, ownerID string, name string, policy collections.DeletePolicy, target string) (*domain.Ledger, error) {
	return s.mutate(ctx, ownerID, TagDeletePersona, func(l domain.Ledger) (domain.Ledger, error) {
		return collections.DeletePersona(l, name, policy, target)
	})
}

// ReconcileRecurring seeds baseline rows and purges legacy aggregate rows
func (s *ledgerService) ReconcileRecurring(ctx context.Context, ownerID string) (*collections.ReconcileResult, error) {
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	res, err := collections.ReconcileRecurringRows(p.Collections, s.recurringSeeds, s.now())
	if err != nil {
		return nil, err
	}
	if res.AddedCount == 0 && res.RemovedCount == 0 {
		return &res, nil
	}
	if _, err := s.commit(ctx, ownerID, p, res.NextCollectionsState, TagReconcileRecurring); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdatePreferences stores the owner's UI preferences
func (s *ledgerService) UpdatePreferences(ctx context.Context, ownerID string, prefs domain.UIPreferences) error {
	if prefs.TextScaleMultiplier < 0 {
		return apperrors.NewValidationError("textScaleMultiplier", "must not be negative")
	}
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return err
	}
	p.UIPreferences = &prefs
	if err := s.profileRepo.SaveProfile(ctx, ownerID, p); err != nil {
		s.logOutcome(ctx, ownerID, "save-preferences", err)
		return err
	}
	return nil
}

// ExportProfile encodes the owner's complete profile
func (s *ledgerService) ExportProfile(ctx context.Context, ownerID string) ([]byte, error) {
	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.ListAllAuditEntries(ctx, ownerID)
	if err != nil {
		s.logOutcome(ctx, ownerID, "export", err)
		return nil, err
	}
	p.AuditTimelineEntries = entries
	return profile.ExportProfile(p, s.now())
}

// ImportProfile applies an export payload to the owner's profile. In merge
// mode collections are merged by id with the import winning; in replace mode
// the imported collections are stored as they are. The audit timeline is
// always merged and gains an "import" entry.
func (s *ledgerService) ImportProfile(ctx context.Context, ownerID string, payload []byte, mode dto.ImportMode) (*domain.Profile, error) {
	imported, err := profile.ImportProfile(payload)
	if err != nil {
		s.logOutcome(ctx, ownerID, "import", err)
		return nil, err
	}
	current, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	existingEntries, err := s.auditRepo.ListAllAuditEntries(ctx, ownerID)
	if err != nil {
		s.logOutcome(ctx, ownerID, "import", err)
		return nil, err
	}

	next := imported.Collections
	if mode != dto.ImportModeReplace {
		next, err = merge.Ledgers(current.Collections, imported.Collections)
		if err == nil {
			err = validation.ValidateLedger(next)
		}
		if err != nil {
			s.logOutcome(ctx, ownerID, "import", err)
			return nil, err
		}
	}
	if imported.UIPreferences != nil {
		current.UIPreferences = imported.UIPreferences
	}

	entries := make([]domain.AuditTimelineEntry, 0, len(imported.AuditTimelineEntries)+1)
	for _, e := range imported.AuditTimelineEntries {
		if e.ID == "" {
			e.ID = s.newID()
		}
		entries = append(entries, e)
	}
	entries = append(entries, s.auditEntry(next, TagImport))

	current.Collections = next
	if err := s.profileRepo.SaveProfile(ctx, ownerID, current, entries...); err != nil {
		s.logOutcome(ctx, ownerID, "import", err)
		return nil, err
	}
	s.ownerLogger(ctx, ownerID).Info("Profile imported", slog.String("mode", string(mode)), slog.Int("audit_entries", len(entries)))

	current.AuditTimelineEntries = merge.AuditTimeline(existingEntries, entries)
	return &current, nil
}
