package collections

import (
	"strings"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
	"github.com/google/uuid"
)

const (
	legacyDebtItem     = "debts"
	legacyDebtCategory = "debt payment"
)

// ReconcileResult is the outcome of ReconcileRecurringRows.
type ReconcileResult struct {
	NextCollectionsState domain.Ledger `json:"nextCollectionsState"`
	AddedCount           int           `json:"addedCount"`
	RemovedCount         int           `json:"removedCount"`
}

// ReconcileRecurringRows makes sure every baseline row in seeds exists in the
// expenses collection and purges the legacy synthetic "Debts" / "Debt Payment"
// aggregate row. A seed matches an existing row with the same item and
// category regardless of amount, so rows kept at 0 are never re-seeded.
// Seeded rows get a fresh id unless the seed carries an unused one, and
// are stamped with now. The schema version is raised to the current one.
func ReconcileRecurringRows(l domain.Ledger, seeds []domain.Record, now time.Time) (ReconcileResult, error) {
	if err := l.Require(domain.CollectionExpenses); err != nil {
		return ReconcileResult{}, err
	}

	next := l.Clone()
	before := len(next.Expenses)
	next.Expenses = filter(next.Expenses, func(r domain.Record) bool { return !isLegacyDebtRow(r) })
	removed := before - len(next.Expenses)

	added := 0
	for _, seed := range seeds {
		if isLegacyDebtRow(seed) || hasRecurringRow(next.Expenses, seed) {
			continue
		}
		row, err := validation.NormalizeRecord(domain.CollectionExpenses, seed)
		if err != nil {
			return ReconcileResult{}, err
		}
		if row.ID == "" || containsID(len(next.Expenses), func(i int) string { return next.Expenses[i].ID }, row.ID) {
			row.ID = uuid.NewString()
		}
		row.UpdatedAt = Timestamp(now)
		next.Expenses = append(next.Expenses, row)
		added++
	}

	if next.SchemaVersion < domain.CurrentSchemaVersion {
		next.SchemaVersion = domain.CurrentSchemaVersion
	}
	return ReconcileResult{NextCollectionsState: next, AddedCount: added, RemovedCount: removed}, nil
}

func isLegacyDebtRow(r domain.Record) bool {
	return strings.EqualFold(strings.TrimSpace(r.Item), legacyDebtItem) &&
		strings.EqualFold(strings.TrimSpace(r.Category), legacyDebtCategory)
}

func hasRecurringRow(rows []domain.Record, seed domain.Record) bool {
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Item), strings.TrimSpace(seed.Item)) &&
			strings.EqualFold(strings.TrimSpace(r.Category), strings.TrimSpace(seed.Category)) {
			return true
		}
	}
	return false
}
