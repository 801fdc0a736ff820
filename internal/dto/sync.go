package dto

import "time"

// SheetsImportParams are the query parameters of a sheets import.
type SheetsImportParams struct {
	ImportParams
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// AsOfTime returns the requested instant, or now when none was given.
func (p SheetsImportParams) AsOfTime(now time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, p.AsOf); err == nil {
		return t
	}
	return now.UTC()
}

// SheetsExportResponse describes a profile snapshot written to the sheet.
type SheetsExportResponse struct {
	DatasetKey string    `json:"datasetKey"`
	ExportedAt time.Time `json:"exportedAt"`
	Bytes      int       `json:"bytes"`
}
