package domain

import "time"

// AuditTimelineEntry is a point-in-time snapshot of the ledger, tagged with
// the action that produced it.
type AuditTimelineEntry struct {
	ID         string  `json:"id"`
	Timestamp  string  `json:"timestamp"`
	ContextTag string  `json:"contextTag,omitempty"`
	Snapshot   *Ledger `json:"snapshot,omitempty"`
}

// Time parses Timestamp. Unparseable timestamps report ok == false.
func (e AuditTimelineEntry) Time() (time.Time, bool) {
	return parseTimestamp(e.Timestamp)
}

// SortState is the persisted sort selection of one table.
type SortState struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// UIPreferences are display settings carried with a profile export.
type UIPreferences struct {
	ThemeName           string               `json:"themeName,omitempty"`
	TextScaleMultiplier float64              `json:"textScaleMultiplier,omitempty"`
	TableSortState      map[string]SortState `json:"tableSortState,omitempty"`
}

// Profile is everything a household owns: the ledger, display preferences
// and the audit timeline.
type Profile struct {
	Collections          Ledger               `json:"collections"`
	UIPreferences        *UIPreferences       `json:"uiPreferences"`
	AuditTimelineEntries []AuditTimelineEntry `json:"auditTimelineEntries"`
}

// NewProfile returns an empty profile around the default ledger.
func NewProfile() Profile {
	return Profile{
		Collections:          NewLedger(),
		AuditTimelineEntries: []AuditTimelineEntry{},
	}
}
