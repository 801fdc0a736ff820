package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// ValidateLedger checks a whole ledger arriving from outside (replace,
// import, merge): every row passes the rules of its collection, ids are
// unique per collection, persona names are unique and, when the ledger
// lists personas, every person reference names one of them. l is not
// modified.
func ValidateLedger(l domain.Ledger) error {
	if err := ValidateLedgerAmounts(l); err != nil {
		return err
	}

	for _, c := range domain.RecordCollections {
		ids := newIDSet(string(c))
		for i, r := range l.Records(c) {
			if _, err := ValidateRequiredFields(c, r); err != nil {
				return at(fmt.Sprintf("%s[%d]", c, i), err)
			}
			if err := ids.add(r.ID, i); err != nil {
				return err
			}
			if err := personaRef(l, r.Person, fmt.Sprintf("%s[%d].person", c, i)); err != nil {
				return err
			}
		}
	}

	ids := newIDSet("goals")
	for i, g := range l.Goals {
		if _, err := ValidateGoal(g); err != nil {
			return at(fmt.Sprintf("goals[%d]", i), err)
		}
		if err := ids.add(g.ID, i); err != nil {
			return err
		}
	}

	ids = newIDSet("creditCards")
	for i, c := range l.CreditCards {
		if _, err := ValidateCreditCard(c); err != nil {
			return at(fmt.Sprintf("creditCards[%d]", i), err)
		}
		if err := ids.add(c.ID, i); err != nil {
			return err
		}
		if err := personaRef(l, c.Person, fmt.Sprintf("creditCards[%d].person", i)); err != nil {
			return err
		}
	}

	ids = newIDSet("assetHoldings")
	for i, h := range l.AssetHoldings {
		if _, err := ValidateAssetHolding(h); err != nil {
			return at(fmt.Sprintf("assetHoldings[%d]", i), err)
		}
		if err := ids.add(h.ID, i); err != nil {
			return err
		}
		if err := personaRef(l, h.Person, fmt.Sprintf("assetHoldings[%d].person", i)); err != nil {
			return err
		}
	}

	names := newIDSet("personas")
	for i, p := range l.Personas {
		p, err := ValidatePersona(p)
		if err != nil {
			return at(fmt.Sprintf("personas[%d]", i), err)
		}
		if err := names.addNamed(p.Name, i, "name"); err != nil {
			return err
		}
	}

	ids = newIDSet("notes")
	for i, n := range l.Notes {
		if _, err := ValidateNote(n); err != nil {
			return at(fmt.Sprintf("notes[%d]", i), err)
		}
		if err := ids.add(n.ID, i); err != nil {
			return err
		}
	}
	return nil
}

// idSet tracks the non-empty ids seen in one collection.
type idSet struct {
	collection string
	seen       map[string]int
}

func newIDSet(collection string) idSet {
	return idSet{collection: collection, seen: map[string]int{}}
}

func (s idSet) add(id string, i int) error {
	return s.addNamed(id, i, "id")
}

func (s idSet) addNamed(value string, i int, field string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if first, dup := s.seen[value]; dup {
		path := fmt.Sprintf("%s[%d].%s", s.collection, i, field)
		return apperrors.NewValidationError(path,
			fmt.Sprintf("%s '%s' is already used by %s[%d]", field, value, s.collection, first))
	}
	s.seen[value] = i
	return nil
}

// personaRef rejects person references to unknown personas. Ledgers that
// list no personas accept any name.
func personaRef(l domain.Ledger, person, path string) error {
	person = strings.TrimSpace(person)
	if person == "" || len(l.Personas) == 0 {
		return nil
	}
	for _, p := range l.Personas {
		if strings.TrimSpace(p.Name) == person {
			return nil
		}
	}
	return apperrors.NewValidationError(path, "persona '"+person+"' does not exist")
}

// at prefixes the field of a row-level validation error with the row's path.
func at(path string, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	field := path
	if appErr.Field != "" {
		field = path + "." + appErr.Field
	}
	return &apperrors.AppError{Kind: appErr.Kind, Message: appErr.Message, Field: field, Err: appErr.Err}
}

// ValidateLedgerAmounts checks every monetary field of every present
// collection. Calculators call it before aggregating so that a bad value is
// reported with its location instead of poisoning a total.
func ValidateLedgerAmounts(l domain.Ledger) error {
	for _, c := range domain.RecordCollections {
		for i, r := range l.Records(c) {
			fields := []struct {
				name  string
				value float64
			}{
				{"amount", r.Amount},
				{"minimumPayment", r.MinimumPayment},
				{"interestRatePercent", r.InterestRatePercent},
				{"collateralAssetMarketValue", r.CollateralAssetMarketValue},
				{"creditLimit", r.CreditLimit},
			}
			for _, f := range fields {
				if _, err := ValidateMonetaryValue(f.value, fmt.Sprintf("%s[%d].%s", c, i, f.name)); err != nil {
					return err
				}
			}
		}
	}
	for i, g := range l.Goals {
		if _, err := ValidateMonetaryValue(g.TargetAmount, fmt.Sprintf("goals[%d].targetAmount", i)); err != nil {
			return err
		}
		if _, err := ValidateMonetaryValue(g.CurrentAmount, fmt.Sprintf("goals[%d].currentAmount", i)); err != nil {
			return err
		}
	}
	for i, c := range l.CreditCards {
		if err := ValidateCardAmounts(c, i); err != nil {
			return err
		}
	}
	for i, h := range l.AssetHoldings {
		if _, err := ValidateMonetaryValue(h.AssetMarketValue, fmt.Sprintf("assetHoldings[%d].assetMarketValue", i)); err != nil {
			return err
		}
		if _, err := ValidateMonetaryValue(h.AssetValueOwed, fmt.Sprintf("assetHoldings[%d].assetValueOwed", i)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCardAmounts checks the monetary fields of the card at index i.
func ValidateCardAmounts(c domain.CreditCard, i int) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"maxCapacity", c.MaxCapacity},
		{"currentBalance", c.CurrentBalance},
		{"minimumPayment", c.MinimumPayment},
		{"monthlyPayment", c.MonthlyPayment},
		{"interestRatePercent", c.InterestRatePercent},
	}
	for _, f := range fields {
		if _, err := ValidateMonetaryValue(f.value, fmt.Sprintf("creditCards[%d].%s", i, f.name)); err != nil {
			return err
		}
	}
	return nil
}
