// Package merge combines an imported ledger or audit timeline with the
// existing one, deduplicating by id.
package merge

import (
	"reflect"
	"sort"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
)

// byKey merges two collections. Rows of imported replace existing rows with
// the same key in place; imported-only rows follow in their own order. Rows
// with an empty key are matched by value instead, so an unkeyed row already
// present is not added twice. A collection absent on both sides stays absent.
func byKey[T any](existing, imported []T, key func(T) string) []T {
	if existing == nil && imported == nil {
		return nil
	}
	incoming := make(map[string]T, len(imported))
	for _, row := range imported {
		if k := key(row); k != "" {
			incoming[k] = row
		}
	}

	out := make([]T, 0, len(existing)+len(imported))
	seen := make(map[string]bool, len(existing)+len(imported))
	var unkeyed []T
	for _, row := range existing {
		k := key(row)
		if k == "" {
			out = append(out, row)
			unkeyed = append(unkeyed, row)
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		if replacement, ok := incoming[k]; ok {
			row = replacement
		}
		out = append(out, row)
	}
	for _, row := range imported {
		k := key(row)
		if k == "" {
			if i := indexEqual(unkeyed, row); i >= 0 {
				unkeyed = append(unkeyed[:i], unkeyed[i+1:]...)
				continue
			}
			out = append(out, row)
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, incoming[k])
	}
	return out
}

func indexEqual[T any](rows []T, row T) int {
	for i := range rows {
		if reflect.DeepEqual(rows[i], row) {
			return i
		}
	}
	return -1
}

// Ledgers merges imported into existing. Each collection is merged by id
// (personas by name) with the imported row winning; schemaVersion is the
// larger of the two. Both ledgers must pass amount validation. Neither input
// is modified.
func Ledgers(existing, imported domain.Ledger) (domain.Ledger, error) {
	if err := validation.ValidateLedgerAmounts(existing); err != nil {
		return domain.Ledger{}, err
	}
	if err := validation.ValidateLedgerAmounts(imported); err != nil {
		return domain.Ledger{}, err
	}
	existing, imported = existing.Clone(), imported.Clone()

	recordID := func(r domain.Record) string { return r.ID }
	out := domain.Ledger{
		Goals:         byKey(existing.Goals, imported.Goals, func(g domain.Goal) string { return g.ID }),
		CreditCards:   byKey(existing.CreditCards, imported.CreditCards, func(c domain.CreditCard) string { return c.ID }),
		AssetHoldings: byKey(existing.AssetHoldings, imported.AssetHoldings, func(h domain.AssetHolding) string { return h.ID }),
		Personas:      byKey(existing.Personas, imported.Personas, func(p domain.Persona) string { return p.Name }),
		Notes:         byKey(existing.Notes, imported.Notes, func(n domain.Note) string { return n.ID }),
		SchemaVersion: max(existing.SchemaVersion, imported.SchemaVersion),
	}
	for _, c := range domain.RecordCollections {
		out.SetRecords(c, byKey(existing.Records(c), imported.Records(c), recordID))
	}
	return out, nil
}

// AuditTimeline returns the union of both timelines keyed by id, imported
// entries winning, sorted oldest first. Entries with equal timestamps keep
// their merge order; unparseable timestamps sort first.
func AuditTimeline(existing, imported []domain.AuditTimelineEntry) []domain.AuditTimelineEntry {
	merged := byKey(existing, imported, func(e domain.AuditTimelineEntry) string { return e.ID })
	if merged == nil {
		return []domain.AuditTimelineEntry{}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return timestampOf(merged[i]).Before(timestampOf(merged[j]))
	})
	return merged
}

func timestampOf(e domain.AuditTimelineEntry) time.Time {
	t, ok := e.Time()
	if !ok {
		return time.Time{}
	}
	return t
}
