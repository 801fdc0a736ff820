// Package sheets stores exported profile payloads as rows of a Google
// Sheets spreadsheet: dataset key, export time, then the payload split over
// as many cells as it needs.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/household_ledger/internal/core/ports/repositories"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// cellLimit keeps each payload chunk under the 50,000 character cell limit.
const cellLimit = 45000

// valuesAPI is the part of the Sheets values API the store uses.
type valuesAPI interface {
	AppendRow(ctx context.Context, rng string, row []interface{}) error
	GetRows(ctx context.Context, rng string) ([][]interface{}, error)
}

// SnapshotStore implements repositories.SnapshotStore on a spreadsheet range.
type SnapshotStore struct {
	values  valuesAPI
	rng     string
	timeout time.Duration
}

// Ensure implementation matches interface
var _ portsrepo.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore authenticates with the service account credentials JSON
// and returns a store writing to rng (for example "Snapshots") of the
// spreadsheet.
func NewSnapshotStore(ctx context.Context, spreadsheetID, credentialsJSON, rng string, timeout time.Duration) (*SnapshotStore, error) {
	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	srv, err := gsheets.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return newSnapshotStore(&sheetValues{srv: srv, spreadsheetID: spreadsheetID}, rng, timeout), nil
}

func newSnapshotStore(values valuesAPI, rng string, timeout time.Duration) *SnapshotStore {
	return &SnapshotStore{values: values, rng: rng, timeout: timeout}
}

// AppendSnapshot appends one row holding the payload.
func (s *SnapshotStore) AppendSnapshot(ctx context.Context, datasetKey string, exportedAt time.Time, payload []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.values.AppendRow(ctx, s.rng, snapshotRow(datasetKey, exportedAt, payload)); err != nil {
		return apperrors.NewAppError(apperrors.KindInternal, "failed to append snapshot for "+datasetKey, err)
	}
	return nil
}

// LatestSnapshot returns the newest payload of datasetKey exported at or before asOf.
func (s *SnapshotStore) LatestSnapshot(ctx context.Context, datasetKey string, asOf time.Time) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.values.GetRows(ctx, s.rng)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.KindInternal, "failed to read snapshots for "+datasetKey, err)
	}
	return latestPayload(rows, datasetKey, asOf)
}

func (s *SnapshotStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func snapshotRow(datasetKey string, exportedAt time.Time, payload []byte) []interface{} {
	row := []interface{}{datasetKey, exportedAt.UTC().Format(time.RFC3339Nano)}
	text := string(payload)
	for len(text) > cellLimit {
		row = append(row, text[:cellLimit])
		text = text[cellLimit:]
	}
	return append(row, text)
}

// latestPayload scans rows for the newest snapshot of datasetKey exported at
// or before asOf. Later rows win ties. Rows with an unparseable export time
// are skipped.
func latestPayload(rows [][]interface{}, datasetKey string, asOf time.Time) ([]byte, error) {
	var (
		best     []interface{}
		bestTime time.Time
	)
	for _, row := range rows {
		if len(row) < 3 || cell(row, 0) != datasetKey {
			continue
		}
		exportedAt, err := time.Parse(time.RFC3339Nano, cell(row, 1))
		if err != nil || exportedAt.After(asOf) {
			continue
		}
		if best == nil || !exportedAt.Before(bestTime) {
			best, bestTime = row, exportedAt
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError("no snapshot of " + datasetKey + " at or before " + asOf.UTC().Format(time.RFC3339))
	}

	var sb strings.Builder
	for i := 2; i < len(best); i++ {
		sb.WriteString(cell(best, i))
	}
	return []byte(sb.String()), nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}

// sheetValues adapts the generated Sheets client to valuesAPI.
type sheetValues struct {
	srv           *gsheets.Service
	spreadsheetID string
}

func (v *sheetValues) AppendRow(ctx context.Context, rng string, row []interface{}) error {
	_, err := v.srv.Spreadsheets.Values.Append(v.spreadsheetID, rng, &gsheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (v *sheetValues) GetRows(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := v.srv.Spreadsheets.Values.Get(v.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
