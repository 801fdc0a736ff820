// Package planning composes metrics, risk findings and projections into the
// planning cockpit.
package planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/payoff"
	"github.com/SscSPs/household_ledger/internal/core/risk"
)

// Budget and checklist statuses.
const (
	StatusOver           = "over"
	StatusUnder          = "under"
	StatusOnTrack        = "on-track"
	StatusDone           = "done"
	StatusNeedsAttention = "needs-attention"
)

const uncategorized = "Uncategorized"

// BudgetRow compares a category's undated baseline with this month's spend.
type BudgetRow struct {
	Category string  `json:"category"`
	Budget   float64 `json:"budget"`
	Actual   float64 `json:"actual"`
	Variance float64 `json:"variance"`
	Status   string  `json:"status"`
}

// RecurringRow is a monthly commitment from the baseline expenses or from a
// liability minimum.
type RecurringRow struct {
	Source        string  `json:"source"`
	RecordRef     string  `json:"recordRef"`
	Item          string  `json:"item"`
	Category      string  `json:"category,omitempty"`
	MonthlyAmount float64 `json:"monthlyAmount"`
}

// AmortizationRow is the payoff outlook of one liability at its minimum payment.
type AmortizationRow struct {
	Source              string  `json:"source"`
	RecordRef           string  `json:"recordRef"`
	Item                string  `json:"item"`
	Balance             float64 `json:"balance"`
	InterestRatePercent float64 `json:"interestRatePercent"`
	MonthlyPayment      float64 `json:"monthlyPayment"`
	PayoffMonths        int     `json:"payoffMonths"`
	TotalInterest       float64 `json:"totalInterest"`
	NeverAmortizes      bool    `json:"neverAmortizes"`
}

// Forecast is the twelve-month outlook.
type Forecast struct {
	MonthlySurplus            float64 `json:"monthlySurplus"`
	ProjectedSurplus12Months  float64 `json:"projectedSurplus12Months"`
	ProjectedNetWorth12Months float64 `json:"projectedNetWorth12Months"`
	ProjectedRiskLevel        string  `json:"projectedRiskLevel"`
	FindingCount              int     `json:"findingCount"`
}

// ScenarioRow summarizes one projection profile.
type ScenarioRow struct {
	ProfileID                string  `json:"profileId"`
	SurplusCapture           float64 `json:"surplusCapture"`
	GrowthPercent            float64 `json:"growthPercent"`
	ProjectedNetWorth1Year   float64 `json:"projectedNetWorth1Year"`
	ProjectedNetWorth5Years  float64 `json:"projectedNetWorth5Years"`
	ProjectedNetWorth10Years float64 `json:"projectedNetWorth10Years"`
	ProjectedDebt10Years     float64 `json:"projectedDebt10Years"`
}

// RiskProvenanceRow ties a finding back to the metric and record behind it.
type RiskProvenanceRow struct {
	FindingID string  `json:"findingId"`
	Severity  string  `json:"severity"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	RecordRef string  `json:"recordRef,omitempty"`
	Message   string  `json:"message"`
}

// ChecklistRow is one reconcile step.
type ChecklistRow struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Insights is the planning cockpit.
type Insights struct {
	BudgetVsActualRows     []BudgetRow         `json:"budgetVsActualRows"`
	RecurringBaselineRows  []RecurringRow      `json:"recurringBaselineRows"`
	AmortizationRows       []AmortizationRow   `json:"amortizationRows"`
	Forecast               Forecast            `json:"forecast"`
	ScenarioRows           []ScenarioRow       `json:"scenarioRows"`
	RiskProvenanceRows     []RiskProvenanceRow `json:"riskProvenanceRows"`
	ReconcileChecklistRows []ChecklistRow      `json:"reconcileChecklistRows"`
}

// Cockpit builds the planning view for the month of asOf. It adds no
// validation of its own; errors come from the calculators it composes.
func Cockpit(l domain.Ledger, asOf time.Time) (Insights, error) {
	dash, err := metrics.Dashboard(l)
	if err != nil {
		return Insights{}, err
	}
	findings, err := risk.Findings(l, asOf)
	if err != nil {
		return Insights{}, err
	}
	projection, err := payoff.ProjectNetWorth(l)
	if err != nil {
		return Insights{}, err
	}

	recurring := recurringBaseline(l)
	return Insights{
		BudgetVsActualRows:     budgetVsActual(l.Expenses, domain.MonthOf(asOf.UTC())),
		RecurringBaselineRows:  recurring,
		AmortizationRows:       amortization(l),
		Forecast:               forecast(dash, projection, findings),
		ScenarioRows:           scenarios(projection),
		RiskProvenanceRows:     provenance(findings),
		ReconcileChecklistRows: checklist(l, asOf, len(recurring)),
	}, nil
}

func categoryOf(r domain.Record) string {
	if c := strings.TrimSpace(r.Category); c != "" {
		return c
	}
	return uncategorized
}

func budgetVsActual(expenses []domain.Record, month domain.Month) []BudgetRow {
	type bucket struct {
		budget, actual float64
		dated          bool
	}
	var order []string
	buckets := map[string]*bucket{}
	for _, r := range expenses {
		cat := categoryOf(r)
		b, ok := buckets[cat]
		if !ok {
			b = &bucket{}
			buckets[cat] = b
			order = append(order, cat)
		}
		d, dated := r.DateValue()
		switch {
		case !dated:
			b.budget += r.Amount
		case month.Contains(d):
			b.actual += r.Amount
			b.dated = true
		}
	}

	rows := make([]BudgetRow, 0, len(order))
	for _, cat := range order {
		b := buckets[cat]
		actual := b.actual
		if !b.dated {
			actual = b.budget
		}
		status := StatusOnTrack
		switch {
		case actual > b.budget:
			status = StatusOver
		case actual < b.budget:
			status = StatusUnder
		}
		rows = append(rows, BudgetRow{
			Category: cat,
			Budget:   b.budget,
			Actual:   actual,
			Variance: b.budget - actual,
			Status:   status,
		})
	}
	return rows
}

func recurringBaseline(l domain.Ledger) []RecurringRow {
	rows := []RecurringRow{}
	for i, r := range l.Expenses {
		if r.Date != "" {
			continue
		}
		cr := domain.CollectionRecord{Collection: domain.CollectionExpenses, Index: i, Record: r}
		rows = append(rows, RecurringRow{
			Source:        string(domain.CollectionExpenses),
			RecordRef:     cr.Ref(),
			Item:          itemOf(r, cr.Ref()),
			Category:      r.Category,
			MonthlyAmount: r.Amount,
		})
	}
	for _, cr := range l.Liabilities() {
		if cr.Record.MinimumPayment <= 0 {
			continue
		}
		rows = append(rows, RecurringRow{
			Source:        string(cr.Collection),
			RecordRef:     cr.Ref(),
			Item:          itemOf(cr.Record, cr.Ref()),
			Category:      cr.Record.Category,
			MonthlyAmount: cr.Record.MinimumPayment,
		})
	}
	return rows
}

func itemOf(r domain.Record, fallback string) string {
	if r.Item != "" {
		return r.Item
	}
	if r.Category != "" {
		return r.Category
	}
	return fallback
}

func amortization(l domain.Ledger) []AmortizationRow {
	rows := []AmortizationRow{}
	for _, cr := range l.Liabilities() {
		r := cr.Record
		if r.Amount <= 0 {
			continue
		}
		row := AmortizationRow{
			Source:              string(cr.Collection),
			RecordRef:           cr.Ref(),
			Item:                itemOf(r, cr.Ref()),
			Balance:             r.Amount,
			InterestRatePercent: r.InterestRatePercent,
			MonthlyPayment:      r.MinimumPayment,
		}
		months, err := payoff.EstimatePayoffMonths(r.Amount, r.MinimumPayment, r.InterestRatePercent)
		if err != nil {
			row.NeverAmortizes = true
			rows = append(rows, row)
			continue
		}
		row.PayoffMonths = months
		if s, err := payoff.SimulateSchedule(r.Amount, r.MinimumPayment, r.InterestRatePercent); err == nil {
			row.TotalInterest = s.TotalInterest
		}
		rows = append(rows, row)
	}
	return rows
}

func forecast(dash metrics.DashboardMetrics, p payoff.Projection, findings []risk.Finding) Forecast {
	f := Forecast{
		MonthlySurplus:           dash.FreeCashFlowAfterDebt,
		ProjectedSurplus12Months: dash.FreeCashFlowAfterDebt * 12,
		ProjectedRiskLevel:       risk.Level(findings),
		FindingCount:             len(findings),
	}
	if moderate, ok := p.Profile(payoff.ProfileModerate); ok {
		if pt, ok := moderate.Point("1-year"); ok {
			f.ProjectedNetWorth12Months = pt.ProjectedNetWorth
		}
	}
	return f
}

func scenarios(p payoff.Projection) []ScenarioRow {
	rows := make([]ScenarioRow, 0, len(payoff.Profiles))
	for _, prof := range payoff.Profiles {
		pp, ok := p.Profile(prof.ID)
		if !ok {
			continue
		}
		row := ScenarioRow{
			ProfileID:      prof.ID,
			SurplusCapture: prof.SurplusCapture,
			GrowthPercent:  prof.GrowthPercent,
		}
		if pt, ok := pp.Point("1-year"); ok {
			row.ProjectedNetWorth1Year = pt.ProjectedNetWorth
		}
		if pt, ok := pp.Point("5-years"); ok {
			row.ProjectedNetWorth5Years = pt.ProjectedNetWorth
		}
		if pt, ok := pp.Point("10-years"); ok {
			row.ProjectedNetWorth10Years = pt.ProjectedNetWorth
			row.ProjectedDebt10Years = pt.ProjectedDebt
		}
		rows = append(rows, row)
	}
	return rows
}

func provenance(findings []risk.Finding) []RiskProvenanceRow {
	rows := make([]RiskProvenanceRow, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, RiskProvenanceRow{
			FindingID: f.ID,
			Severity:  string(f.Severity),
			Metric:    f.Metric,
			Value:     f.Value,
			Threshold: f.Threshold,
			RecordRef: f.RecordRef,
			Message:   f.Message,
		})
	}
	return rows
}

func checklist(l domain.Ledger, asOf time.Time, recurringCount int) []ChecklistRow {
	stale := len(risk.StaleLiabilities(l, asOf))
	balances := ChecklistRow{
		ID:     "balances-resynced",
		Label:  "Resync liability balances",
		Status: StatusDone,
		Detail: "All liability balances were updated in the last 90 days.",
	}
	if stale > 0 {
		balances.Status = StatusNeedsAttention
		balances.Detail = fmt.Sprintf("%d liability balances are older than 90 days.", stale)
	}

	baseline := ChecklistRow{
		ID:     "recurring-baseline-reviewed",
		Label:  "Review recurring baseline",
		Status: StatusDone,
		Detail: fmt.Sprintf("%d recurring commitments tracked.", recurringCount),
	}
	if recurringCount == 0 {
		baseline.Status = StatusNeedsAttention
		baseline.Detail = "No undated expenses or liability minimums are tracked."
	}

	missing := 0
	for _, r := range l.Expenses {
		if strings.TrimSpace(r.Category) == "" {
			missing++
		}
	}
	categorized := ChecklistRow{
		ID:     "records-categorized",
		Label:  "Categorize expenses",
		Status: StatusDone,
		Detail: "Every expense has a category.",
	}
	if missing > 0 {
		categorized.Status = StatusNeedsAttention
		categorized.Detail = fmt.Sprintf("%d expenses have no category.", missing)
	}

	return []ChecklistRow{balances, baseline, categorized}
}
