package services

import (
	"context"

	"github.com/SscSPs/household_ledger/internal/core/collections"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations on an owner's ledger
type LedgerReaderSvc interface {
	// GetLedger returns the owner's ledger, or the default empty ledger for a
	// new owner.
	GetLedger(ctx context.Context, ownerID string) (*domain.Ledger, error)

	// ListRecords returns the filtered and sorted rows of one record collection.
	ListRecords(ctx context.Context, ownerID string, collection domain.Collection, criteria collections.Criteria) ([]domain.Record, error)

	// GetPersonaImpact counts the records referencing a persona.
	GetPersonaImpact(ctx context.Context, ownerID string, name string) (*collections.PersonaImpactSummary, error)

	// ListAuditEntries returns a page of the audit timeline, newest first.
	ListAuditEntries(ctx context.Context, ownerID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error)
}

// LedgerWriterSvc defines mutations of an owner's ledger. Every successful
// mutation stores the new ledger together with an audit entry holding its
// snapshot.
type LedgerWriterSvc interface {
	ReplaceLedger(ctx context.Context, ownerID string, ledger domain.Ledger) (*domain.Ledger, error)
	AppendRecord(ctx context.Context, ownerID string, collection domain.Collection, record domain.Record) (*domain.Ledger, error)
	AppendGoal(ctx context.Context, ownerID string, goal domain.Goal) (*domain.Ledger, error)
	AppendCreditCard(ctx context.Context, ownerID string, card domain.CreditCard) (*domain.Ledger, error)
	AppendAssetHolding(ctx context.Context, ownerID string, holding domain.AssetHolding) (*domain.Ledger, error)
	AppendNote(ctx context.Context, ownerID string, note domain.Note) (*domain.Ledger, error)
	AddPersona(ctx context.Context, ownerID string, persona domain.Persona) (*domain.Ledger, error)
	RenamePersona(ctx context.Context, ownerID string, name string, req dto.RenamePersonaRequest) (*domain.Ledger, error)
	DeletePersona(ctx context.Context, ownerID string, name string, policy collections.DeletePolicy, target string) (*domain.Ledger, error)

	// ReconcileRecurring seeds baseline recurring rows and purges legacy
	// aggregate rows. Nothing is stored when nothing changed.
	ReconcileRecurring(ctx context.Context, ownerID string) (*collections.ReconcileResult, error)

	// UpdatePreferences stores UI preferences without an audit entry.
	UpdatePreferences(ctx context.Context, ownerID string, prefs domain.UIPreferences) error
}

// LedgerTransferSvc defines profile export and import
type LedgerTransferSvc interface {
	// ExportProfile encodes the owner's complete profile as an export payload.
	ExportProfile(ctx context.Context, ownerID string) ([]byte, error)

	// ImportProfile decodes payload and applies it to the owner's profile.
	ImportProfile(ctx context.Context, ownerID string, payload []byte, mode dto.ImportMode) (*domain.Profile, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerTransferSvc
}
