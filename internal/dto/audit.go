package dto

import "github.com/SscSPs/household_ledger/internal/core/domain"

// ListAuditParams defines the query parameters for listing audit entries.
type ListAuditParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// AuditEntryResponse is an audit entry without its snapshot.
type AuditEntryResponse struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	ContextTag string `json:"contextTag,omitempty"`
}

// ListAuditResponse is one page of audit entries, newest first.
type ListAuditResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToAuditEntryResponses converts audit entries to their responses.
func ToAuditEntryResponses(entries []domain.AuditTimelineEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditEntryResponse{ID: e.ID, Timestamp: e.Timestamp, ContextTag: e.ContextTag}
	}
	return res
}
