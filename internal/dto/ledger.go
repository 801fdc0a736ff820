package dto

import (
	"strings"

	"github.com/SscSPs/household_ledger/internal/core/collections"
	"github.com/SscSPs/household_ledger/internal/core/domain"
)

// ImportMode decides how an imported profile meets the stored one.
type ImportMode string

const (
	// ImportModeMerge merges collections and timeline by id, import winning.
	ImportModeMerge ImportMode = "merge"
	// ImportModeReplace swaps the stored collections for the imported ones.
	ImportModeReplace ImportMode = "replace"
)

// ImportParams are the query parameters of an import request.
type ImportParams struct {
	Mode string `form:"mode" binding:"omitempty,oneof=merge replace"`
}

// ImportMode returns the requested mode, merge by default.
func (p ImportParams) ImportMode() ImportMode {
	if p.Mode == "" {
		return ImportModeMerge
	}
	return ImportMode(p.Mode)
}

// ListRecordsParams selects and orders the rows of one collection.
type ListRecordsParams struct {
	Search        string `form:"search"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection" binding:"omitempty,oneof=asc desc"`
}

// ToCriteria converts the query parameters to filter criteria.
func (p ListRecordsParams) ToCriteria() collections.Criteria {
	return collections.Criteria{
		SearchText:    strings.TrimSpace(p.Search),
		SortBy:        p.SortBy,
		SortDirection: p.SortDirection,
	}
}

// RenamePersonaRequest renames a persona and optionally updates its emoji and note.
type RenamePersonaRequest struct {
	NewName string  `json:"newName" binding:"required"`
	Emoji   *string `json:"emoji,omitempty"`
	Note    *string `json:"note,omitempty"`
}

// ToPatch returns the optional attribute updates.
func (r RenamePersonaRequest) ToPatch() collections.PersonaPatch {
	return collections.PersonaPatch{Emoji: r.Emoji, Note: r.Note}
}

// DeletePersonaParams are the query parameters of a persona deletion.
type DeletePersonaParams struct {
	Policy string `form:"policy" binding:"required,oneof=reassign cascade"`
	Target string `form:"target"`
}

// ReconcileResponse reports what a recurring-row reconciliation changed.
type ReconcileResponse struct {
	AddedCount   int           `json:"addedCount"`
	RemovedCount int           `json:"removedCount"`
	Collections  domain.Ledger `json:"collections"`
}

// ToReconcileResponse converts a reconcile result to its response.
func ToReconcileResponse(r collections.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		AddedCount:   r.AddedCount,
		RemovedCount: r.RemovedCount,
		Collections:  r.NextCollectionsState,
	}
}

// ImportResponse summarizes an applied import.
type ImportResponse struct {
	Mode                 ImportMode    `json:"mode"`
	Collections          domain.Ledger `json:"collections"`
	AuditTimelineEntries int           `json:"auditTimelineEntries"`
}

// ToImportResponse converts an imported profile to its response.
func ToImportResponse(mode ImportMode, p *domain.Profile) ImportResponse {
	return ImportResponse{
		Mode:                 mode,
		Collections:          p.Collections,
		AuditTimelineEntries: len(p.AuditTimelineEntries),
	}
}
