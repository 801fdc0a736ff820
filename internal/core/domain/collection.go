package domain

import (
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
)

// Collection names one of the ledger's keyed collections. Values match the
// JSON keys of a Ledger.
type Collection string

const (
	CollectionIncome        Collection = "income"
	CollectionExpenses      Collection = "expenses"
	CollectionAssets        Collection = "assets"
	CollectionDebts         Collection = "debts"
	CollectionCredit        Collection = "credit"
	CollectionLoans         Collection = "loans"
	CollectionGoals         Collection = "goals"
	CollectionCreditCards   Collection = "creditCards"
	CollectionAssetHoldings Collection = "assetHoldings"
	CollectionPersonas      Collection = "personas"
	CollectionNotes         Collection = "notes"
)

// RecordCollections are the collections holding plain Record rows.
var RecordCollections = []Collection{
	CollectionIncome,
	CollectionExpenses,
	CollectionAssets,
	CollectionDebts,
	CollectionCredit,
	CollectionLoans,
}

// LiabilityCollections are the record collections whose amounts are owed balances.
var LiabilityCollections = []Collection{CollectionDebts, CollectionCredit, CollectionLoans}

// IsRecordCollection reports whether c stores Record rows.
func (c Collection) IsRecordCollection() bool {
	for _, rc := range RecordCollections {
		if rc == c {
			return true
		}
	}
	return false
}

// IsLiability reports whether c is debts, credit or loans.
func (c Collection) IsLiability() bool {
	return c == CollectionDebts || c == CollectionCredit || c == CollectionLoans
}

// RecordType is the singular label used for rows of c in unified views.
func (c Collection) RecordType() string {
	switch c {
	case CollectionIncome:
		return "income"
	case CollectionExpenses:
		return "expense"
	case CollectionAssets:
		return "asset"
	case CollectionDebts:
		return "debt"
	case CollectionCredit:
		return "credit"
	case CollectionLoans:
		return "loan"
	case CollectionGoals:
		return "goal"
	case CollectionCreditCards:
		return "credit card"
	case CollectionAssetHoldings:
		return "asset"
	case CollectionPersonas:
		return "persona"
	case CollectionNotes:
		return "note"
	}
	return string(c)
}

var collectionAliases = map[string]Collection{
	"income":        CollectionIncome,
	"expense":       CollectionExpenses,
	"expenses":      CollectionExpenses,
	"asset":         CollectionAssets,
	"assets":        CollectionAssets,
	"savings":       CollectionAssets,
	"debt":          CollectionDebts,
	"debts":         CollectionDebts,
	"credit":        CollectionCredit,
	"loan":          CollectionLoans,
	"loans":         CollectionLoans,
	"goal":          CollectionGoals,
	"goals":         CollectionGoals,
	"creditcard":    CollectionCreditCards,
	"creditcards":   CollectionCreditCards,
	"credit card":   CollectionCreditCards,
	"credit cards":  CollectionCreditCards,
	"assetholding":  CollectionAssetHoldings,
	"assetholdings": CollectionAssetHoldings,
	"persona":       CollectionPersonas,
	"personas":      CollectionPersonas,
	"note":          CollectionNotes,
	"notes":         CollectionNotes,
}

// ParseCollection resolves a collection key or a singular record type
// ("expense", "debt", ...) to a Collection.
func ParseCollection(name string) (Collection, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := collectionAliases[key]; ok {
		return c, nil
	}
	return "", apperrors.NewValidationError("collection", "unknown collection '"+name+"'")
}
