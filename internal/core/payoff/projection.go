package payoff

import (
	"math"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
	"github.com/SscSPs/household_ledger/internal/core/validation"
	"github.com/shopspring/decimal"
)

// Profile is an aggression layer of the net-worth projection.
type Profile struct {
	ID string `json:"id"`
	// SurplusCapture is the share of the monthly surplus that is put to work.
	SurplusCapture float64 `json:"surplusCapture"`
	// GrowthPercent is the annual growth applied to assets.
	GrowthPercent float64 `json:"growthPercent"`
	// DebtShare is the share of captured surplus paid against debt on top of minimums.
	DebtShare float64 `json:"debtShare"`
}

// Horizon is a fixed projection checkpoint.
type Horizon struct {
	ID     string `json:"id"`
	Months int    `json:"months"`
}

const (
	ProfileConservative = "conservative"
	ProfileModerate     = "moderate"
	ProfileAggressive   = "aggressive"
)

// Profiles are the three aggression layers, least aggressive first.
var Profiles = []Profile{
	{ID: ProfileConservative, SurplusCapture: 0.5, GrowthPercent: 2, DebtShare: 0},
	{ID: ProfileModerate, SurplusCapture: 0.75, GrowthPercent: 5, DebtShare: 0.25},
	{ID: ProfileAggressive, SurplusCapture: 1, GrowthPercent: 7, DebtShare: 0.5},
}

// Horizons are the projection checkpoints in ascending order.
var Horizons = []Horizon{
	{ID: "6-months", Months: 6},
	{ID: "1-year", Months: 12},
	{ID: "2-years", Months: 24},
	{ID: "3-years", Months: 36},
	{ID: "5-years", Months: 60},
	{ID: "10-years", Months: 120},
}

// ProjectionPoint is the projected position of a profile at a horizon.
type ProjectionPoint struct {
	HorizonID         string  `json:"horizonId"`
	Months            int     `json:"months"`
	ProjectedAssets   float64 `json:"projectedAssets"`
	ProjectedDebt     float64 `json:"projectedDebt"`
	ProjectedNetWorth float64 `json:"projectedNetWorth"`
}

// ProfileProjection is one profile's points, one per horizon.
type ProfileProjection struct {
	ID     string            `json:"id"`
	Points []ProjectionPoint `json:"points"`
}

// Point returns the point at the horizon with the given id.
func (p ProfileProjection) Point(horizonID string) (ProjectionPoint, bool) {
	for _, pt := range p.Points {
		if pt.HorizonID == horizonID {
			return pt, true
		}
	}
	return ProjectionPoint{}, false
}

// Projection is the full net-worth projection.
type Projection struct {
	Profiles []ProfileProjection `json:"profiles"`
	Horizons []Horizon           `json:"horizons"`
}

// Profile returns the projection for the profile with the given id.
func (p Projection) Profile(id string) (ProfileProjection, bool) {
	for _, pp := range p.Profiles {
		if pp.ID == id {
			return pp, true
		}
	}
	return ProfileProjection{}, false
}

// projectionStart is the ledger position the simulation starts from.
type projectionStart struct {
	assets, debt, surplus, minimums, monthlyRate float64
}

// ProjectNetWorth simulates every profile month by month up to the longest
// horizon. Debt accrues at the balance-weighted APR; once it is gone the
// minimums it absorbed flow into assets. A negative surplus drains assets
// and any shortfall becomes new debt.
func ProjectNetWorth(l domain.Ledger) (Projection, error) {
	if err := l.Require(metrics.DashboardCollections...); err != nil {
		return Projection{}, err
	}
	if err := validation.ValidateLedgerAmounts(l); err != nil {
		return Projection{}, err
	}
	summary, err := metrics.IncomeExpenseSummary(l)
	if err != nil {
		return Projection{}, err
	}

	minimums := metrics.MonthlyDebtMinimums(l)
	start := projectionStart{
		assets:      metrics.TotalAssets(l),
		debt:        metrics.TotalLiabilities(l),
		surplus:     summary.MonthlySurplusDeficit - minimums,
		minimums:    minimums,
		monthlyRate: monthlyRate(metrics.WeightedAverageRate(l)),
	}

	out := Projection{Horizons: append([]Horizon{}, Horizons...)}
	for _, p := range Profiles {
		out.Profiles = append(out.Profiles, ProfileProjection{ID: p.ID, Points: simulate(start, p)})
	}
	return out, nil
}

func simulate(s projectionStart, p Profile) []ProjectionPoint {
	assets, debt := s.assets, s.debt
	growth := p.GrowthPercent / 1200

	captured := s.surplus
	if captured > 0 {
		captured *= p.SurplusCapture
	}
	extraDebt := 0.0
	if captured > 0 {
		extraDebt = captured * p.DebtShare
	}
	toAssets := captured - extraDebt

	last := Horizons[len(Horizons)-1].Months
	points := make([]ProjectionPoint, 0, len(Horizons))
	h := 0
	for month := 1; month <= last; month++ {
		debt += debt * s.monthlyRate
		budget := s.minimums + extraDebt
		paid := math.Min(debt, budget)
		debt -= paid

		assets = assets*(1+growth) + toAssets + (budget - paid)
		if assets < 0 {
			debt += -assets
			assets = 0
		}

		if month == Horizons[h].Months {
			points = append(points, ProjectionPoint{
				HorizonID:         Horizons[h].ID,
				Months:            month,
				ProjectedAssets:   cents(assets),
				ProjectedDebt:     cents(debt),
				ProjectedNetWorth: cents(assets - debt),
			})
			h++
		}
	}
	return points
}

func cents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
