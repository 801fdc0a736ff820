package validation

import (
	"strings"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

type goalRules struct {
	Title           string            `json:"title" validate:"required"`
	Status          domain.GoalStatus `json:"status" validate:"goalstatus"`
	TimeframeMonths int               `json:"timeframeMonths" validate:"gt=0"`
	TargetAmount    float64           `json:"targetAmount" validate:"money"`
	CurrentAmount   float64           `json:"currentAmount" validate:"money"`
}

type creditCardRules struct {
	Item                string  `json:"item" validate:"required"`
	MaxCapacity         float64 `json:"maxCapacity" validate:"money"`
	CurrentBalance      float64 `json:"currentBalance" validate:"money"`
	MinimumPayment      float64 `json:"minimumPayment" validate:"money"`
	MonthlyPayment      float64 `json:"monthlyPayment" validate:"money"`
	InterestRatePercent float64 `json:"interestRatePercent" validate:"money"`
}

type assetHoldingRules struct {
	Item             string  `json:"item" validate:"required"`
	AssetMarketValue float64 `json:"assetMarketValue" validate:"money"`
	AssetValueOwed   float64 `json:"assetValueOwed" validate:"money"`
	Date             string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type personaRules struct {
	Name string `json:"name" validate:"required"`
}

type noteRules struct {
	Body string `json:"body" validate:"required"`
}

// NormalizeGoalStatus maps loose spellings ("In-Progress", "") onto the
// enumerated statuses. Unknown values are returned lower-cased.
func NormalizeGoalStatus(s string) domain.GoalStatus {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	switch key {
	case "":
		return domain.GoalNotStarted
	case "inprogress":
		return domain.GoalInProgress
	case "notstarted":
		return domain.GoalNotStarted
	case "done", "complete":
		return domain.GoalCompleted
	}
	return domain.GoalStatus(key)
}

// ValidateGoal normalizes g and checks title, status and timeframe.
func ValidateGoal(g domain.Goal) (domain.Goal, error) {
	g.ID = strings.TrimSpace(g.ID)
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
	g.Notes = strings.TrimSpace(g.Notes)
	g.Status = NormalizeGoalStatus(string(g.Status))
	g.Tags = normalizeTags(g.Tags)

	err := validate.Struct(goalRules{
		Title:           g.Title,
		Status:          g.Status,
		TimeframeMonths: g.TimeframeMonths,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
	})
	if err != nil {
		return domain.Goal{}, toAppError(err)
	}
	return g, nil
}

// ValidateCreditCard normalizes c and checks its monetary fields.
func ValidateCreditCard(c domain.CreditCard) (domain.CreditCard, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.Person = strings.TrimSpace(c.Person)
	c.Item = strings.TrimSpace(c.Item)
	c.Notes = strings.TrimSpace(c.Notes)
	c.Tags = normalizeTags(c.Tags)

	err := validate.Struct(creditCardRules{
		Item:                c.Item,
		MaxCapacity:         c.MaxCapacity,
		CurrentBalance:      c.CurrentBalance,
		MinimumPayment:      c.MinimumPayment,
		MonthlyPayment:      c.MonthlyPayment,
		InterestRatePercent: c.InterestRatePercent,
	})
	if err != nil {
		return domain.CreditCard{}, toAppError(err)
	}
	return c, nil
}

// ValidateAssetHolding normalizes h and checks its values.
func ValidateAssetHolding(h domain.AssetHolding) (domain.AssetHolding, error) {
	h.ID = strings.TrimSpace(h.ID)
	h.Person = strings.TrimSpace(h.Person)
	h.Item = strings.TrimSpace(h.Item)
	h.Date = strings.TrimSpace(h.Date)
	h.Notes = strings.TrimSpace(h.Notes)
	h.Tags = normalizeTags(h.Tags)

	err := validate.Struct(assetHoldingRules{
		Item:             h.Item,
		AssetMarketValue: h.AssetMarketValue,
		AssetValueOwed:   h.AssetValueOwed,
		Date:             h.Date,
	})
	if err != nil {
		return domain.AssetHolding{}, toAppError(err)
	}
	return h, nil
}

// ValidatePersona trims and checks a persona.
func ValidatePersona(p domain.Persona) (domain.Persona, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Emoji = strings.TrimSpace(p.Emoji)
	p.Note = strings.TrimSpace(p.Note)
	if err := validate.Struct(personaRules{Name: p.Name}); err != nil {
		return domain.Persona{}, toAppError(err)
	}
	return p, nil
}

// ValidateNote trims and checks a note.
func ValidateNote(n domain.Note) (domain.Note, error) {
	n.ID = strings.TrimSpace(n.ID)
	n.Title = strings.TrimSpace(n.Title)
	n.Body = strings.TrimSpace(n.Body)
	if err := validate.Struct(noteRules{Body: n.Body}); err != nil {
		return domain.Note{}, toAppError(err)
	}
	return n, nil
}
