package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
)

// CurrentSchemaVersion is the ledger schema version written by this build.
const CurrentSchemaVersion = 2

// RecordTypeSavings marks an asset row as a tracked savings contribution.
const RecordTypeSavings = "savings"

// GoalStatus is the lifecycle state of a Goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not started"
	GoalInProgress GoalStatus = "in progress"
	GoalCompleted  GoalStatus = "completed"
)

// Record is a row of the income, expenses, assets, debts, credit or loans
// collections. Type-specific fields are zero when absent.
type Record struct {
	ID                         string   `json:"id,omitempty"`
	Person                     string   `json:"person,omitempty"`
	Item                       string   `json:"item,omitempty"`
	Category                   string   `json:"category,omitempty"`
	Amount                     float64  `json:"amount"`
	Date                       string   `json:"date,omitempty"`
	Description                string   `json:"description,omitempty"`
	Notes                      string   `json:"notes"`
	Tags                       []string `json:"tags"`
	UpdatedAt                  string   `json:"updatedAt,omitempty"`
	RecordType                 string   `json:"recordType,omitempty"`
	MinimumPayment             float64  `json:"minimumPayment,omitempty"`
	InterestRatePercent        float64  `json:"interestRatePercent,omitempty"`
	CollateralAssetMarketValue float64  `json:"collateralAssetMarketValue,omitempty"`
	CreditLimit                float64  `json:"creditLimit,omitempty"`
}

// DateValue returns the parsed record date. ok is false for undated or
// malformed dates.
func (r Record) DateValue() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UpdatedTime parses UpdatedAt as RFC3339 or a bare YYYY-MM-DD date.
func (r Record) UpdatedTime() (time.Time, bool) {
	return parseTimestamp(r.UpdatedAt)
}

// IsSavings reports whether an asset row is a tracked savings contribution.
func (r Record) IsSavings() bool {
	return strings.EqualFold(strings.TrimSpace(r.RecordType), RecordTypeSavings)
}

// CreditCard is a card tracked outside the credit collection with its own
// payment plan.
type CreditCard struct {
	ID                  string   `json:"id,omitempty"`
	Person              string   `json:"person,omitempty"`
	Item                string   `json:"item,omitempty"`
	MaxCapacity         float64  `json:"maxCapacity"`
	CurrentBalance      float64  `json:"currentBalance"`
	MinimumPayment      float64  `json:"minimumPayment"`
	MonthlyPayment      float64  `json:"monthlyPayment"`
	InterestRatePercent float64  `json:"interestRatePercent"`
	Notes               string   `json:"notes"`
	Tags                []string `json:"tags"`
	UpdatedAt           string   `json:"updatedAt,omitempty"`
}

// AssetHolding is a valued asset with an optional amount still owed on it.
type AssetHolding struct {
	ID               string   `json:"id,omitempty"`
	Person           string   `json:"person,omitempty"`
	Item             string   `json:"item,omitempty"`
	AssetMarketValue float64  `json:"assetMarketValue"`
	AssetValueOwed   float64  `json:"assetValueOwed"`
	Date             string   `json:"date,omitempty"`
	Notes            string   `json:"notes"`
	Tags             []string `json:"tags"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// NetValue is market value minus the amount owed.
func (h AssetHolding) NetValue() float64 {
	return h.AssetMarketValue - h.AssetValueOwed
}

// DateValue returns the parsed holding date.
func (h AssetHolding) DateValue() (time.Time, bool) {
	return Record{Date: h.Date}.DateValue()
}

// Goal is a savings or payoff target.
type Goal struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	Status          GoalStatus `json:"status"`
	TimeframeMonths int        `json:"timeframeMonths"`
	TargetAmount    float64    `json:"targetAmount,omitempty"`
	CurrentAmount   float64    `json:"currentAmount,omitempty"`
	Description     string     `json:"description,omitempty"`
	Notes           string     `json:"notes"`
	Tags            []string   `json:"tags"`
	UpdatedAt       string     `json:"updatedAt,omitempty"`
}

// Persona is a household member records can be attributed to.
type Persona struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Note is a free-form ledger note.
type Note struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Ledger is the complete collections state of a profile. A nil collection
// means the key was absent from the payload it was decoded from.
type Ledger struct {
	Income        []Record       `json:"income"`
	Expenses      []Record       `json:"expenses"`
	Assets        []Record       `json:"assets"`
	Debts         []Record       `json:"debts"`
	Credit        []Record       `json:"credit"`
	Loans         []Record       `json:"loans"`
	Goals         []Goal         `json:"goals"`
	CreditCards   []CreditCard   `json:"creditCards"`
	AssetHoldings []AssetHolding `json:"assetHoldings"`
	Personas      []Persona      `json:"personas"`
	Notes         []Note         `json:"notes"`
	SchemaVersion int            `json:"schemaVersion"`
}

// NewLedger returns the default ledger: every collection present and empty.
func NewLedger() Ledger {
	return Ledger{
		Income:        []Record{},
		Expenses:      []Record{},
		Assets:        []Record{},
		Debts:         []Record{},
		Credit:        []Record{},
		Loans:         []Record{},
		Goals:         []Goal{},
		CreditCards:   []CreditCard{},
		AssetHoldings: []AssetHolding{},
		Personas:      []Persona{},
		Notes:         []Note{},
		SchemaVersion: CurrentSchemaVersion,
	}
}

// Records returns the rows of a record collection, nil for any other collection.
func (l Ledger) Records(c Collection) []Record {
	switch c {
	case CollectionIncome:
		return l.Income
	case CollectionExpenses:
		return l.Expenses
	case CollectionAssets:
		return l.Assets
	case CollectionDebts:
		return l.Debts
	case CollectionCredit:
		return l.Credit
	case CollectionLoans:
		return l.Loans
	}
	return nil
}

// SetRecords replaces the rows of a record collection.
func (l *Ledger) SetRecords(c Collection, rows []Record) {
	switch c {
	case CollectionIncome:
		l.Income = rows
	case CollectionExpenses:
		l.Expenses = rows
	case CollectionAssets:
		l.Assets = rows
	case CollectionDebts:
		l.Debts = rows
	case CollectionCredit:
		l.Credit = rows
	case CollectionLoans:
		l.Loans = rows
	}
}

// Has reports whether the collection key is present.
func (l Ledger) Has(c Collection) bool {
	switch c {
	case CollectionGoals:
		return l.Goals != nil
	case CollectionCreditCards:
		return l.CreditCards != nil
	case CollectionAssetHoldings:
		return l.AssetHoldings != nil
	case CollectionPersonas:
		return l.Personas != nil
	case CollectionNotes:
		return l.Notes != nil
	}
	return l.Records(c) != nil
}

// Require returns a VALIDATION error naming the first absent collection.
func (l Ledger) Require(collections ...Collection) error {
	for _, c := range collections {
		if !l.Has(c) {
			return apperrors.NewValidationError(string(c), "collection '"+string(c)+"' is required")
		}
	}
	return nil
}

// Liabilities returns every debts, credit and loans row along with its collection.
func (l Ledger) Liabilities() []CollectionRecord {
	var out []CollectionRecord
	for _, c := range LiabilityCollections {
		for i, r := range l.Records(c) {
			out = append(out, CollectionRecord{Collection: c, Index: i, Record: r})
		}
	}
	return out
}

// CollectionRecord is a record together with the collection and position it came from.
type CollectionRecord struct {
	Collection Collection
	Index      int
	Record     Record
}

// Ref is a stable identifier for the row: its id, or collection-position.
func (cr CollectionRecord) Ref() string {
	if cr.Record.ID != "" {
		return cr.Record.ID
	}
	return string(cr.Collection) + "-" + strconv.Itoa(cr.Index+1)
}

// HasPersona reports whether a persona with the given name exists.
func (l Ledger) HasPersona(name string) bool {
	for _, p := range l.Personas {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Nil collections stay nil.
func (l Ledger) Clone() Ledger {
	out := l
	out.Income = cloneRecords(l.Income)
	out.Expenses = cloneRecords(l.Expenses)
	out.Assets = cloneRecords(l.Assets)
	out.Debts = cloneRecords(l.Debts)
	out.Credit = cloneRecords(l.Credit)
	out.Loans = cloneRecords(l.Loans)
	if l.Goals != nil {
		out.Goals = make([]Goal, len(l.Goals))
		for i, g := range l.Goals {
			g.Tags = cloneTags(g.Tags)
			out.Goals[i] = g
		}
	}
	if l.CreditCards != nil {
		out.CreditCards = make([]CreditCard, len(l.CreditCards))
		for i, c := range l.CreditCards {
			c.Tags = cloneTags(c.Tags)
			out.CreditCards[i] = c
		}
	}
	if l.AssetHoldings != nil {
		out.AssetHoldings = make([]AssetHolding, len(l.AssetHoldings))
		for i, h := range l.AssetHoldings {
			h.Tags = cloneTags(h.Tags)
			out.AssetHoldings[i] = h
		}
	}
	if l.Personas != nil {
		out.Personas = append([]Persona{}, l.Personas...)
	}
	if l.Notes != nil {
		out.Notes = append([]Note{}, l.Notes...)
	}
	return out
}

func cloneRecords(rows []Record) []Record {
	if rows == nil {
		return nil
	}
	out := make([]Record, len(rows))
	for i, r := range rows {
		r.Tags = cloneTags(r.Tags)
		out[i] = r
	}
	return out
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return append([]string{}, tags...)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	// Older exports stamped rows with a bare date.
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
