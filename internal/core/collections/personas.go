package collections

import (
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// DeletePolicy decides what happens to records of a deleted persona.
type DeletePolicy string

const (
	// PolicyReassign moves every record to a target persona.
	PolicyReassign DeletePolicy = "reassign"
	// PolicyCascade removes every record of the persona.
	PolicyCascade DeletePolicy = "cascade"
)

// PersonaPatch carries optional persona attribute updates. Nil fields are left unchanged.
type PersonaPatch struct {
	Emoji *string
	Note  *string
}

// PersonaImpactSummary counts the records that reference a persona.
type PersonaImpactSummary struct {
	Income        int `json:"income"`
	Expenses      int `json:"expenses"`
	Assets        int `json:"assets"`
	Debts         int `json:"debts"`
	Credit        int `json:"credit"`
	Loans         int `json:"loans"`
	CreditCards   int `json:"creditCards"`
	AssetHoldings int `json:"assetHoldings"`
	Total         int `json:"total"`
}

// PersonaImpact counts how many records in each collection reference name.
func PersonaImpact(l domain.Ledger, name string) (PersonaImpactSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PersonaImpactSummary{}, apperrors.NewValidationError("name", "persona name is required")
	}

	count := func(rows []domain.Record) int {
		n := 0
		for _, r := range rows {
			if r.Person == name {
				n++
			}
		}
		return n
	}

	s := PersonaImpactSummary{
		Income:   count(l.Income),
		Expenses: count(l.Expenses),
		Assets:   count(l.Assets),
		Debts:    count(l.Debts),
		Credit:   count(l.Credit),
		Loans:    count(l.Loans),
	}
	for _, c := range l.CreditCards {
		if c.Person == name {
			s.CreditCards++
		}
	}
	for _, h := range l.AssetHoldings {
		if h.Person == name {
			s.AssetHoldings++
		}
	}
	s.Total = s.Income + s.Expenses + s.Assets + s.Debts + s.Credit + s.Loans + s.CreditCards + s.AssetHoldings
	return s, nil
}

// RenamePersona renames a persona and rewrites every record that references it.
func RenamePersona(l domain.Ledger, oldName, newName string, patch PersonaPatch) (domain.Ledger, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.Ledger{}, apperrors.NewValidationError("name", "new persona name is required")
	}
	if !l.HasPersona(oldName) {
		return domain.Ledger{}, apperrors.NewValidationError("name", "persona '"+oldName+"' does not exist")
	}
	if newName != oldName && l.HasPersona(newName) {
		return domain.Ledger{}, apperrors.NewValidationError("name", "persona '"+newName+"' already exists")
	}

	next := l.Clone()
	for i, p := range next.Personas {
		if p.Name != oldName {
			continue
		}
		p.Name = newName
		if patch.Emoji != nil {
			p.Emoji = strings.TrimSpace(*patch.Emoji)
		}
		if patch.Note != nil {
			p.Note = strings.TrimSpace(*patch.Note)
		}
		next.Personas[i] = p
	}
	reassign(&next, oldName, newName)
	return next, nil
}

// DeletePersona removes a persona. With PolicyReassign every record moves to
// target; with PolicyCascade every record of the persona is removed.
func DeletePersona(l domain.Ledger, name string, policy DeletePolicy, target string) (domain.Ledger, error) {
	name = strings.TrimSpace(name)
	target = strings.TrimSpace(target)
	if !l.HasPersona(name) {
		return domain.Ledger{}, apperrors.NewValidationError("name", "persona '"+name+"' does not exist")
	}

	next := l.Clone()
	switch policy {
	case PolicyReassign:
		if target == "" || target == name {
			return domain.Ledger{}, apperrors.NewValidationError("target", "reassign target must be a different persona")
		}
		if !l.HasPersona(target) {
			return domain.Ledger{}, apperrors.NewValidationError("target", "persona '"+target+"' does not exist")
		}
		reassign(&next, name, target)
	case PolicyCascade:
		keep := func(r domain.Record) bool { return r.Person != name }
		for _, c := range domain.RecordCollections {
			next.SetRecords(c, filter(next.Records(c), keep))
		}
		next.CreditCards = filter(next.CreditCards, func(c domain.CreditCard) bool { return c.Person != name })
		next.AssetHoldings = filter(next.AssetHoldings, func(h domain.AssetHolding) bool { return h.Person != name })
	default:
		return domain.Ledger{}, apperrors.NewValidationError("policy", "policy must be 'reassign' or 'cascade'")
	}

	next.Personas = filter(next.Personas, func(p domain.Persona) bool { return p.Name != name })
	return next, nil
}

func reassign(l *domain.Ledger, from, to string) {
	for _, c := range domain.RecordCollections {
		rows := l.Records(c)
		for i := range rows {
			if rows[i].Person == from {
				rows[i].Person = to
			}
		}
	}
	for i := range l.CreditCards {
		if l.CreditCards[i].Person == from {
			l.CreditCards[i].Person = to
		}
	}
	for i := range l.AssetHoldings {
		if l.AssetHoldings[i].Person == from {
			l.AssetHoldings[i].Person = to
		}
	}
}

// filter keeps rows matching keep. A nil input stays nil.
func filter[T any](rows []T, keep func(T) bool) []T {
	if rows == nil {
		return nil
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
