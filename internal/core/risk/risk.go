// Package risk scans a ledger with a fixed table of rules and reports
// findings ordered by severity.
package risk

import (
	"sort"
	"time"

	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// MaxFindings bounds the output of Findings.
const MaxFindings = 50

// Severity of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	}
	return 3
}

// Finding is one triggered rule. RecordRef points at the row that triggered
// a per-record rule.
type Finding struct {
	ID        string   `json:"id"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Metric    string   `json:"metric"`
	Value     float64  `json:"value"`
	Threshold float64  `json:"threshold"`
	RecordRef string   `json:"recordRef,omitempty"`
}

// hit is what a rule reports; the engine turns it into a Finding.
type hit struct {
	ref     string
	value   float64
	message string
}

type rule struct {
	id        string
	severity  Severity
	metric    string
	threshold float64
	// perRecord rules emit one finding per hit with the record ref appended to id.
	perRecord bool
	evaluate  func(*scan) []hit
}

// Findings evaluates every rule against l and returns at most MaxFindings
// findings, most severe first. Findings of equal severity keep rule order.
func Findings(l domain.Ledger, asOf time.Time) ([]Finding, error) {
	s, err := newScan(l, asOf)
	if err != nil {
		return nil, err
	}

	out := []Finding{}
	for _, r := range rules {
		for _, h := range r.evaluate(s) {
			f := Finding{
				ID:        r.id,
				Severity:  r.severity,
				Message:   h.message,
				Metric:    r.metric,
				Value:     h.value,
				Threshold: r.threshold,
				RecordRef: h.ref,
			}
			if r.perRecord {
				f.ID = r.id + "-" + h.ref
			}
			out = append(out, f)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.rank() < out[j].Severity.rank()
	})
	if len(out) > MaxFindings {
		out = out[:MaxFindings]
	}
	return out, nil
}

// Level is the severity of the most severe finding, or "none".
func Level(findings []Finding) string {
	if len(findings) == 0 {
		return "none"
	}
	top := findings[0].Severity
	for _, f := range findings[1:] {
		if f.Severity.rank() < top.rank() {
			top = f.Severity
		}
	}
	return string(top)
}
