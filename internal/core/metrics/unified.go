package metrics

import (
	"math"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/validation"
)

// UnifiedRecord is one row of the canonical monthly-flow view across every
// collection. Amount is the monthly figure for the row; SignedAmount is its
// effect on cash flow (inflows positive, outflows negative, balances zero).
type UnifiedRecord struct {
	ID               string  `json:"id,omitempty"`
	SourceCollection string  `json:"sourceCollection"`
	RecordType       string  `json:"recordType"`
	Person           string  `json:"person,omitempty"`
	Item             string  `json:"item,omitempty"`
	Category         string  `json:"category,omitempty"`
	Date             string  `json:"date,omitempty"`
	Amount           float64 `json:"amount"`
	SignedAmount     float64 `json:"signedAmount"`
	Description      string  `json:"description,omitempty"`
}

// UnifiedRecords lists every record, card and holding as a UnifiedRecord in
// collection order. A holding's Amount is its equity, floored at zero when
// more is owed on it than it is worth.
func UnifiedRecords(l domain.Ledger) ([]UnifiedRecord, error) {
	if err := l.Require(DashboardCollections...); err != nil {
		return nil, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return nil, err
	}

	var out []UnifiedRecord
	for _, c := range domain.RecordCollections {
		for _, r := range l.Records(c) {
			u := UnifiedRecord{
				ID:               r.ID,
				SourceCollection: string(c),
				RecordType:       c.RecordType(),
				Person:           r.Person,
				Item:             r.Item,
				Category:         r.Category,
				Date:             r.Date,
				Description:      r.Description,
			}
			switch {
			case c == domain.CollectionIncome:
				u.Amount, u.SignedAmount = r.Amount, r.Amount
			case c == domain.CollectionExpenses:
				u.Amount, u.SignedAmount = r.Amount, -r.Amount
			case c == domain.CollectionAssets && r.IsSavings():
				u.RecordType = domain.RecordTypeSavings
				u.Amount, u.SignedAmount = r.Amount, -r.Amount
			case c == domain.CollectionAssets:
				u.Amount = r.Amount
			default:
				u.Amount, u.SignedAmount = r.MinimumPayment, -r.MinimumPayment
			}
			out = append(out, u)
		}
	}
	for _, card := range l.CreditCards {
		out = append(out, UnifiedRecord{
			ID:               card.ID,
			SourceCollection: string(domain.CollectionCreditCards),
			RecordType:       domain.CollectionCreditCards.RecordType(),
			Person:           card.Person,
			Item:             card.Item,
			Amount:           card.MonthlyPayment,
			SignedAmount:     -card.MonthlyPayment,
		})
	}
	for _, h := range l.AssetHoldings {
		out = append(out, UnifiedRecord{
			ID:               h.ID,
			SourceCollection: string(domain.CollectionAssetHoldings),
			RecordType:       domain.CollectionAssetHoldings.RecordType(),
			Person:           h.Person,
			Item:             h.Item,
			Date:             h.Date,
			Amount:           math.Max(h.NetValue(), 0),
		})
	}
	if out == nil {
		out = []UnifiedRecord{}
	}
	return out, nil
}
