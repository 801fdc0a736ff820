package validation

import (
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
)

type moneyRules struct {
	Amount                     float64 `json:"amount" validate:"money"`
	MinimumPayment             float64 `json:"minimumPayment" validate:"money"`
	InterestRatePercent        float64 `json:"interestRatePercent" validate:"money"`
	CollateralAssetMarketValue float64 `json:"collateralAssetMarketValue" validate:"money"`
	CreditLimit                float64 `json:"creditLimit" validate:"money"`
}

type cashFlowRules struct {
	Category string `json:"category" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}

type assetRules struct {
	Label string `json:"item" validate:"required"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type liabilityRules struct {
	Item string `json:"item" validate:"required"`
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// NormalizeRecord trims text fields, defaults tags and notes, and validates
// every monetary field. Applying it twice yields the same record.
func NormalizeRecord(c domain.Collection, r domain.Record) (domain.Record, error) {
	if !c.IsRecordCollection() {
		return domain.Record{}, apperrors.NewValidationError("collection", "'"+string(c)+"' does not hold records")
	}

	r.ID = strings.TrimSpace(r.ID)
	r.Person = strings.TrimSpace(r.Person)
	r.Item = strings.TrimSpace(r.Item)
	r.Category = strings.TrimSpace(r.Category)
	r.Date = strings.TrimSpace(r.Date)
	r.Description = strings.TrimSpace(r.Description)
	r.Notes = strings.TrimSpace(r.Notes)
	r.RecordType = strings.TrimSpace(r.RecordType)
	r.Tags = normalizeTags(r.Tags)

	err := validate.Struct(moneyRules{
		Amount:                     r.Amount,
		MinimumPayment:             r.MinimumPayment,
		InterestRatePercent:        r.InterestRatePercent,
		CollateralAssetMarketValue: r.CollateralAssetMarketValue,
		CreditLimit:                r.CreditLimit,
	})
	if err != nil {
		return domain.Record{}, toAppError(err)
	}
	return r, nil
}

// ValidateRequiredFields normalizes r and applies the required-field rules
// of its collection.
func ValidateRequiredFields(c domain.Collection, r domain.Record) (domain.Record, error) {
	r, err := NormalizeRecord(c, r)
	if err != nil {
		return domain.Record{}, err
	}

	switch c {
	case domain.CollectionIncome, domain.CollectionExpenses:
		err = validate.Struct(cashFlowRules{Category: r.Category, Date: r.Date})
	case domain.CollectionAssets:
		label := r.Item
		if label == "" {
			label = r.Category
		}
		err = validate.Struct(assetRules{Label: label, Date: r.Date})
	default:
		err = validate.Struct(liabilityRules{Item: r.Item, Date: r.Date})
	}
	if err != nil {
		return domain.Record{}, toAppError(err)
	}
	return r, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
