package collections

import (
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
	"github.com/google/uuid"
)

// Timestamp formats the update stamp written by every mutator.
func Timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

// AppendRecord validates r against the rules of collection c and returns a
// new ledger with the normalized row appended. l is never modified.
func AppendRecord(l domain.Ledger, c domain.Collection, r domain.Record, now time.Time) (domain.Ledger, error) {
	if !c.IsRecordCollection() {
		return domain.Ledger{}, apperrors.NewValidationError("collection", "'"+string(c)+"' does not hold records")
	}
	if err := l.Require(c); err != nil {
		return domain.Ledger{}, err
	}

	r, err := validation.ValidateRequiredFields(c, r)
	if err != nil {
		return domain.Ledger{}, err
	}
	if err := checkPersona(l, r.Person); err != nil {
		return domain.Ledger{}, err
	}

	rows := l.Records(c)
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if containsID(len(rows), func(i int) string { return rows[i].ID }, r.ID) {
		return domain.Ledger{}, apperrors.NewValidationError("id", "a "+c.RecordType()+" with id '"+r.ID+"' already exists")
	}
	r.UpdatedAt = Timestamp(now)

	next := l.Clone()
	next.SetRecords(c, append(next.Records(c), r))
	return next, nil
}

// AppendGoal validates g and appends it to a copy of l.
func AppendGoal(l domain.Ledger, g domain.Goal, now time.Time) (domain.Ledger, error) {
	if err := l.Require(domain.CollectionGoals); err != nil {
		return domain.Ledger{}, err
	}
	g, err := validation.ValidateGoal(g)
	if err != nil {
		return domain.Ledger{}, err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	} else if containsID(len(l.Goals), func(i int) string { return l.Goals[i].ID }, g.ID) {
		return domain.Ledger{}, apperrors.NewValidationError("id", "a goal with id '"+g.ID+"' already exists")
	}
	g.UpdatedAt = Timestamp(now)

	next := l.Clone()
	next.Goals = append(next.Goals, g)
	return next, nil
}

// AppendCreditCard validates card and appends it to a copy of l.
func AppendCreditCard(l domain.Ledger, card domain.CreditCard, now time.Time) (domain.Ledger, error) {
	if err := l.Require(domain.CollectionCreditCards); err != nil {
		return domain.Ledger{}, err
	}
	card, err := validation.ValidateCreditCard(card)
	if err != nil {
		return domain.Ledger{}, err
	}
	if err := checkPersona(l, card.Person); err != nil {
		return domain.Ledger{}, err
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	} else if containsID(len(l.CreditCards), func(i int) string { return l.CreditCards[i].ID }, card.ID) {
		return domain.Ledger{}, apperrors.NewValidationError("id", "a credit card with id '"+card.ID+"' already exists")
	}
	card.UpdatedAt = Timestamp(now)

	next := l.Clone()
	next.CreditCards = append(next.CreditCards, card)
	return next, nil
}

// AppendAssetHolding validates h and appends it to a copy of l.
func AppendAssetHolding(l domain.Ledger, h domain.AssetHolding, now time.Time) (domain.Ledger, error) {
	if err := l.Require(domain.CollectionAssetHoldings); err != nil {
		return domain.Ledger{}, err
	}
	h, err := validation.ValidateAssetHolding(h)
	if err != nil {
		return domain.Ledger{}, err
	}
	if err := checkPersona(l, h.Person); err != nil {
		return domain.Ledger{}, err
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	} else if containsID(len(l.AssetHoldings), func(i int) string { return l.AssetHoldings[i].ID }, h.ID) {
		return domain.Ledger{}, apperrors.NewValidationError("id", "an asset holding with id '"+h.ID+"' already exists")
	}
	h.UpdatedAt = Timestamp(now)

	next := l.Clone()
	next.AssetHoldings = append(next.AssetHoldings, h)
	return next, nil
}

// AppendNote validates n and appends it to a copy of l.
func AppendNote(l domain.Ledger, n domain.Note, now time.Time) (domain.Ledger, error) {
	if err := l.Require(domain.CollectionNotes); err != nil {
		return domain.Ledger{}, err
	}
	n, err := validation.ValidateNote(n)
	if err != nil {
		return domain.Ledger{}, err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	} else if containsID(len(l.Notes), func(i int) string { return l.Notes[i].ID }, n.ID) {
		return domain.Ledger{}, apperrors.NewValidationError("id", "a note with id '"+n.ID+"' already exists")
	}
	n.UpdatedAt = Timestamp(now)

	next := l.Clone()
	next.Notes = append(next.Notes, n)
	return next, nil
}

// AddPersona validates p and appends it to a copy of l. Names are unique.
func AddPersona(l domain.Ledger, p domain.Persona) (domain.Ledger, error) {
	if err := l.Require(domain.CollectionPersonas); err != nil {
		return domain.Ledger{}, err
	}
	p, err := validation.ValidatePersona(p)
	if err != nil {
		return domain.Ledger{}, err
	}
	if l.HasPersona(p.Name) {
		return domain.Ledger{}, apperrors.NewValidationError("name", "persona '"+p.Name+"' already exists")
	}

	next := l.Clone()
	next.Personas = append(next.Personas, p)
	return next, nil
}

// checkPersona rejects references to personas the ledger does not know.
// Ledgers without a personas collection accept any name.
func checkPersona(l domain.Ledger, person string) error {
	if person == "" || l.Personas == nil || l.HasPersona(person) {
		return nil
	}
	return apperrors.NewValidationError("person", "persona '"+person+"' does not exist")
}

func containsID(n int, idAt func(int) string, id string) bool {
	for i := 0; i < n; i++ {
		if idAt(i) == id {
			return true
		}
	}
	return false
}
