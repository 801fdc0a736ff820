// Package profile encodes ledgers and complete profiles as JSON export
// payloads and decodes them back, accepting the older collections-only shape.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
)

// Payload is the export envelope. Profile is set for complete-profile
// exports, Collections for ledger-only exports.
type Payload struct {
	SchemaVersion int             `json:"schemaVersion"`
	ExportedAt    string          `json:"exportedAt"`
	Profile       *domain.Profile `json:"profile,omitempty"`
	Collections   *domain.Ledger  `json:"collections,omitempty"`
}

// ExportLedger encodes a ledger-only payload.
func ExportLedger(l domain.Ledger, exportedAt time.Time) ([]byte, error) {
	return encode(Payload{
		SchemaVersion: versionOf(l),
		ExportedAt:    exportedAt.UTC().Format(time.RFC3339),
		Collections:   &l,
	})
}

// ExportProfile encodes a complete profile: ledger, UI preferences and audit
// timeline.
func ExportProfile(p domain.Profile, exportedAt time.Time) ([]byte, error) {
	if p.AuditTimelineEntries == nil {
		p.AuditTimelineEntries = []domain.AuditTimelineEntry{}
	}
	return encode(Payload{
		SchemaVersion: versionOf(p.Collections),
		ExportedAt:    exportedAt.UTC().Format(time.RFC3339),
		Profile:       &p,
	})
}

// ImportLedger decodes the collections of any accepted payload shape.
func ImportLedger(data []byte) (domain.Ledger, error) {
	p, err := ImportProfile(data)
	if err != nil {
		return domain.Ledger{}, err
	}
	return p.Collections, nil
}

// ImportProfile decodes a complete profile payload. Older payloads that carry
// only collections, either wrapped in {"collections": ...} or as a bare
// ledger object, are accepted with uiPreferences left nil and an empty audit
// timeline.
func ImportProfile(data []byte) (domain.Profile, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return domain.Profile{}, parseError(err)
	}

	var p domain.Profile
	switch {
	case keys["profile"] != nil && !isNull(keys["profile"]):
		if err := json.Unmarshal(keys["profile"], &p); err != nil {
			return domain.Profile{}, parseError(err)
		}
	case keys["collections"] != nil && !isNull(keys["collections"]):
		if err := json.Unmarshal(keys["collections"], &p.Collections); err != nil {
			return domain.Profile{}, parseError(err)
		}
	case hasCollectionKey(keys):
		if err := json.Unmarshal(data, &p.Collections); err != nil {
			return domain.Profile{}, parseError(err)
		}
	default:
		return domain.Profile{}, apperrors.NewValidationError("collections", "payload carries no ledger collections")
	}

	if v := p.Collections.SchemaVersion; v > domain.CurrentSchemaVersion {
		return domain.Profile{}, apperrors.NewValidationError("schemaVersion",
			fmt.Sprintf("schema version %d is newer than supported version %d", v, domain.CurrentSchemaVersion))
	}
	if err := validation.ValidateLedger(p.Collections); err != nil {
		return domain.Profile{}, err
	}
	p.Collections = Backfill(p.Collections)
	if p.AuditTimelineEntries == nil {
		p.AuditTimelineEntries = []domain.AuditTimelineEntry{}
	}
	return p, nil
}

func encode(v Payload) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.KindJSONStringify, "could not encode export payload", err)
	}
	return data, nil
}

func parseError(err error) error {
	return apperrors.NewAppError(apperrors.KindJSONParse, "could not decode import payload", err)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func hasCollectionKey(keys map[string]json.RawMessage) bool {
	for _, c := range domain.RecordCollections {
		if _, ok := keys[string(c)]; ok {
			return true
		}
	}
	return false
}

func versionOf(l domain.Ledger) int {
	if l.SchemaVersion == 0 {
		return domain.CurrentSchemaVersion
	}
	return l.SchemaVersion
}

// Backfill fills absent collections with empty ones and stamps the current
// schema version on unversioned ledgers.
func Backfill(l domain.Ledger) domain.Ledger {
	def := domain.NewLedger()
	for _, c := range domain.RecordCollections {
		if l.Records(c) == nil {
			l.SetRecords(c, []domain.Record{})
		}
	}
	if l.Goals == nil {
		l.Goals = def.Goals
	}
	if l.CreditCards == nil {
		l.CreditCards = def.CreditCards
	}
	if l.AssetHoldings == nil {
		l.AssetHoldings = def.AssetHoldings
	}
	if l.Personas == nil {
		l.Personas = def.Personas
	}
	if l.Notes == nil {
		l.Notes = def.Notes
	}
	l.SchemaVersion = versionOf(l)
	return l
}
