package risk

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/metrics"
)

// StaleAfter is how long a liability balance may go without an update.
const StaleAfter = 90 * 24 * time.Hour

var fixedCostKeywords = []string{
	"housing", "rent", "mortgage", "utilit", "insurance", "electric", "water",
	"internet", "phone", "childcare", "tuition", "property tax", "hoa",
}

// scan is the precomputed state every rule reads from.
type scan struct {
	ledger      domain.Ledger
	asOf        time.Time
	dash        metrics.DashboardMetrics
	liquid      float64
	obligations float64
	liabilities []domain.CollectionRecord
}

func newScan(l domain.Ledger, asOf time.Time) (*scan, error) {
	dash, err := metrics.Dashboard(l)
	if err != nil {
		return nil, err
	}
	return &scan{
		ledger:      l,
		asOf:        asOf,
		dash:        dash,
		liquid:      metrics.Liquidity(l).Liquid,
		obligations: dash.TotalExpenses + dash.MonthlyDebtPayments,
		liabilities: l.Liabilities(),
	}, nil
}

// runway is liquid cash over monthly obligations; ok is false when nothing
// is owed each month.
func (s *scan) runway() (float64, bool) {
	if s.obligations <= 0 {
		return 0, false
	}
	return s.liquid / s.obligations, true
}

func isFixedCost(r domain.Record) bool {
	label := strings.ToLower(r.Category + " " + r.Item)
	for _, k := range fixedCostKeywords {
		if strings.Contains(label, k) {
			return true
		}
	}
	return false
}

func (s *scan) fixedCostRatio() float64 {
	fixed := s.dash.MonthlyDebtPayments
	for _, r := range s.ledger.Expenses {
		if isFixedCost(r) {
			fixed += r.Amount
		}
	}
	if s.dash.TotalIncome <= 0 {
		return 0
	}
	return fixed / s.dash.TotalIncome * 100
}

// incomeSourceKey groups income rows by item, then category, then description.
func incomeSourceKey(r domain.Record) string {
	for _, k := range []string{r.Item, r.Category, r.Description} {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			return k
		}
	}
	return "unlabeled"
}

// largestIncomeShare returns the percentage of income from the largest source.
func (s *scan) largestIncomeShare() float64 {
	if s.dash.TotalIncome <= 0 {
		return 0
	}
	bySource := map[string]float64{}
	largest := 0.0
	for _, r := range s.ledger.Income {
		k := incomeSourceKey(r)
		bySource[k] += r.Amount
		if bySource[k] > largest {
			largest = bySource[k]
		}
	}
	return largest / s.dash.TotalIncome * 100
}

// aprExposure is annual interest cost as a percentage of annual income.
func (s *scan) aprExposure() float64 {
	if s.dash.TotalIncome <= 0 {
		return 0
	}
	var annualInterest float64
	for _, cr := range s.liabilities {
		annualInterest += cr.Record.Amount * cr.Record.InterestRatePercent / 100
	}
	return annualInterest / (s.dash.TotalIncome * 12) * 100
}

func (s *scan) staleLiabilities() []domain.CollectionRecord {
	return StaleLiabilities(s.ledger, s.asOf)
}

// StaleLiabilities returns the debts, credit and loans rows last updated at
// least StaleAfter before asOf. Rows without updatedAt are not stale.
func StaleLiabilities(l domain.Ledger, asOf time.Time) []domain.CollectionRecord {
	var out []domain.CollectionRecord
	for _, cr := range l.Liabilities() {
		t, ok := cr.Record.UpdatedTime()
		if ok && asOf.Sub(t) >= StaleAfter {
			out = append(out, cr)
		}
	}
	return out
}

func cardRef(c domain.CreditCard, i int) string {
	if c.ID != "" {
		return c.ID
	}
	return string(domain.CollectionCreditCards) + "-" + strconv.Itoa(i+1)
}

func label(r domain.Record, fallback string) string {
	if r.Item != "" {
		return r.Item
	}
	if r.Category != "" {
		return r.Category
	}
	return fallback
}
