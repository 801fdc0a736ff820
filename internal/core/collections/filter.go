package collections

import (
	"sort"
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// Criteria selects and orders records for a table view.
type Criteria struct {
	SearchText    string `json:"searchText"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
}

var recordSortKeys = map[string]func(a, b domain.Record) int{
	"amount":      func(a, b domain.Record) int { return compareFloat(a.Amount, b.Amount) },
	"date":        func(a, b domain.Record) int { return strings.Compare(a.Date, b.Date) },
	"updatedAt":   func(a, b domain.Record) int { return strings.Compare(a.UpdatedAt, b.UpdatedAt) },
	"item":        func(a, b domain.Record) int { return compareFold(a.Item, b.Item) },
	"category":    func(a, b domain.Record) int { return compareFold(a.Category, b.Category) },
	"person":      func(a, b domain.Record) int { return compareFold(a.Person, b.Person) },
	"description": func(a, b domain.Record) int { return compareFold(a.Description, b.Description) },
}

// FilterAndSort returns the records matching c.SearchText, ordered by
// c.SortBy. Matching is a case-insensitive substring test over the text
// fields and tags. The sort is stable; an empty SortBy keeps input order.
func FilterAndSort(rows []domain.Record, c Criteria) ([]domain.Record, error) {
	var compare func(a, b domain.Record) int
	if c.SortBy != "" {
		cmp, ok := recordSortKeys[c.SortBy]
		if !ok {
			return nil, apperrors.NewValidationError("sortBy", "cannot sort by '"+c.SortBy+"'")
		}
		compare = cmp
	}

	desc := false
	switch strings.ToLower(c.SortDirection) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, apperrors.NewValidationError("sortDirection", "sortDirection must be 'asc' or 'desc'")
	}

	needle := strings.ToLower(strings.TrimSpace(c.SearchText))
	out := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		if needle == "" || matchesSearch(r, needle) {
			out = append(out, r)
		}
	}

	if compare != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return compare(out[i], out[j]) > 0
			}
			return compare(out[i], out[j]) < 0
		})
	}
	return out, nil
}

func matchesSearch(r domain.Record, needle string) bool {
	fields := append([]string{r.Description, r.Item, r.Category, r.Person, r.Notes}, r.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
