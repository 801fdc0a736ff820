package models

import "time"

// LedgerProfile is the stored row of an owner's profile. Collections and
// UIPreferences hold JSON documents.
type LedgerProfile struct {
	OwnerID       string
	Collections   []byte
	UIPreferences []byte // nil when the owner has none
	SchemaVersion int
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// AuditTimelineEntry is the stored row of one audit entry. RecordedAt is the
// parsed form of RawTimestamp, the zero time when it could not be parsed.
type AuditTimelineEntry struct {
	OwnerID      string
	EntryID      string
	RecordedAt   time.Time
	RawTimestamp string
	ContextTag   string
	Snapshot     []byte // nil when not loaded or absent
}
