package risk

import (
	"fmt"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

func single(cond bool, value float64, message string) []hit {
	if !cond {
		return nil
	}
	return []hit{{value: value, message: message}}
}

// rules is evaluated in order; the order breaks ties between findings of the
// same severity.
var rules = []rule{
	{
		id: "cash-flow-negative", severity: SeverityHigh, metric: "freeCashFlowAfterDebt", threshold: 0,
		evaluate: func(s *scan) []hit {
			v := s.dash.FreeCashFlowAfterDebt
			return single(v < 0, v, fmt.Sprintf("Spending and debt minimums exceed income by %.2f per month.", -v))
		},
	},
	{
		id: "runway-debt-lt-1", severity: SeverityCritical, metric: "emergencyRunwayMonths", threshold: 1,
		evaluate: func(s *scan) []hit {
			r, ok := s.runway()
			return single(ok && r < 1, r, fmt.Sprintf("Liquid savings cover %.1f months of expenses and debt payments.", r))
		},
	},
	{
		id: "runway-debt-lt-3", severity: SeverityHigh, metric: "emergencyRunwayMonths", threshold: 3,
		evaluate: func(s *scan) []hit {
			r, ok := s.runway()
			return single(ok && r >= 1 && r < 3, r, fmt.Sprintf("Liquid savings cover %.1f months of expenses and debt payments.", r))
		},
	},
	{
		id: "fixed-cost-ratio-gt-60", severity: SeverityHigh, metric: "fixedCostRatioPercent", threshold: 60,
		evaluate: func(s *scan) []hit {
			v := s.fixedCostRatio()
			return single(v > 60, v, fmt.Sprintf("Fixed costs and debt minimums take %.1f%% of income.", v))
		},
	},
	{
		id: "income-concentration-gt-90", severity: SeverityMedium, metric: "largestIncomeSourcePercent", threshold: 90,
		evaluate: func(s *scan) []hit {
			v := s.largestIncomeShare()
			return single(v > 90, v, fmt.Sprintf("%.1f%% of income comes from a single source.", v))
		},
	},
	{
		id: "apr-exposure-gt-25", severity: SeverityHigh, metric: "annualInterestToIncomePercent", threshold: 25,
		evaluate: func(s *scan) []hit {
			v := s.aprExposure()
			return single(v > 25, v, fmt.Sprintf("Annual interest on balances equals %.1f%% of annual income.", v))
		},
	},
	{
		id: "secured-specific-ltv-risk", severity: SeverityHigh, metric: "loanToValuePercent", threshold: 90,
		evaluate: func(s *scan) []hit {
			var worst *hit
			for _, cr := range s.liabilities {
				r := cr.Record
				if cr.Collection == domain.CollectionCredit || r.CollateralAssetMarketValue <= 0 {
					continue
				}
				ltv := r.Amount / r.CollateralAssetMarketValue * 100
				if ltv > 90 && (worst == nil || ltv > worst.value) {
					worst = &hit{ref: cr.Ref(), value: ltv, message: fmt.Sprintf(
						"%s owes %.1f%% of its collateral value.", label(r, cr.Ref()), ltv)}
				}
			}
			if worst == nil {
				return nil
			}
			return []hit{*worst}
		},
	},
	{
		id: "stale-balance-gt-3", severity: SeverityHigh, metric: "staleLiabilityCount", threshold: 3,
		evaluate: func(s *scan) []hit {
			n := float64(len(s.staleLiabilities()))
			return single(n > 3, n, fmt.Sprintf("%.0f liability balances have not been updated in 90 days.", n))
		},
	},
	{
		id: "stale-balance-gt-0", severity: SeverityMedium, metric: "staleLiabilityCount", threshold: 0,
		evaluate: func(s *scan) []hit {
			n := float64(len(s.staleLiabilities()))
			return single(n > 0 && n <= 3, n, fmt.Sprintf("%.0f liability balances have not been updated in 90 days.", n))
		},
	},
	{
		id: "credit-utilization-gt-90", severity: SeverityHigh, metric: "creditUtilizationPercent", threshold: 90,
		evaluate: func(s *scan) []hit {
			v := s.dash.CreditUtilizationPercent
			return single(v > 90, v, fmt.Sprintf("Credit utilization is %.1f%%.", v))
		},
	},
	{
		id: "credit-utilization-gt-30", severity: SeverityMedium, metric: "creditUtilizationPercent", threshold: 30,
		evaluate: func(s *scan) []hit {
			v := s.dash.CreditUtilizationPercent
			return single(v > 30 && v <= 90, v, fmt.Sprintf("Credit utilization is %.1f%%.", v))
		},
	},
	{
		id: "debt-to-income-gt-50", severity: SeverityHigh, metric: "debtToIncomeRatioPercent", threshold: 50,
		evaluate: func(s *scan) []hit {
			v := s.dash.DebtToIncomeRatioPercent
			return single(v > 50, v, fmt.Sprintf("Debt payments take %.1f%% of income.", v))
		},
	},
	{
		id: "debt-to-income-gt-36", severity: SeverityMedium, metric: "debtToIncomeRatioPercent", threshold: 36,
		evaluate: func(s *scan) []hit {
			v := s.dash.DebtToIncomeRatioPercent
			return single(v > 36 && v <= 50, v, fmt.Sprintf("Debt payments take %.1f%% of income.", v))
		},
	},
	{
		id: "negative-net-worth", severity: SeverityHigh, metric: "netWorth", threshold: 0,
		evaluate: func(s *scan) []hit {
			v := s.dash.NetWorth
			return single(v < 0, v, fmt.Sprintf("Liabilities exceed assets by %.2f.", -v))
		},
	},
	{
		id: "credit-over-limit", severity: SeverityHigh, metric: "balanceToLimitPercent", threshold: 100, perRecord: true,
		evaluate: func(s *scan) []hit {
			var out []hit
			for i, r := range s.ledger.Credit {
				if r.CreditLimit > 0 && r.Amount > r.CreditLimit {
					ref := fmt.Sprintf("credit-%d", i+1)
					if r.ID != "" {
						ref = r.ID
					}
					v := r.Amount / r.CreditLimit * 100
					out = append(out, hit{ref: ref, value: v, message: fmt.Sprintf("%s is over its limit (%.1f%%).", label(r, ref), v)})
				}
			}
			for i, c := range s.ledger.CreditCards {
				if c.MaxCapacity > 0 && c.CurrentBalance > c.MaxCapacity {
					ref := cardRef(c, i)
					name := c.Item
					if name == "" {
						name = ref
					}
					v := c.CurrentBalance / c.MaxCapacity * 100
					out = append(out, hit{ref: ref, value: v, message: fmt.Sprintf("%s is over its limit (%.1f%%).", name, v)})
				}
			}
			return out
		},
	},
	{
		id: "high-apr", severity: SeverityMedium, metric: "interestRatePercent", threshold: 20, perRecord: true,
		evaluate: func(s *scan) []hit {
			var out []hit
			for _, cr := range s.liabilities {
				r := cr.Record
				if r.Amount > 0 && r.InterestRatePercent >= 20 {
					out = append(out, hit{ref: cr.Ref(), value: r.InterestRatePercent,
						message: fmt.Sprintf("%s carries a %.1f%% APR.", label(r, cr.Ref()), r.InterestRatePercent)})
				}
			}
			return out
		},
	},
	{
		id: "missing-apr", severity: SeverityLow, metric: "interestRatePercent", threshold: 0, perRecord: true,
		evaluate: func(s *scan) []hit {
			var out []hit
			for _, cr := range s.liabilities {
				r := cr.Record
				if r.Amount > 0 && r.InterestRatePercent == 0 {
					out = append(out, hit{ref: cr.Ref(), message: fmt.Sprintf("%s has no interest rate recorded.", label(r, cr.Ref()))})
				}
			}
			return out
		},
	},
}
