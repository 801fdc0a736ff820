package repositories

import (
	"context"
	"time"
)

// SnapshotStore keeps exported profile payloads in an external store under a
// dataset key, one row per export.
type SnapshotStore interface {
	// AppendSnapshot stores a payload exported at exportedAt.
	AppendSnapshot(ctx context.Context, datasetKey string, exportedAt time.Time, payload []byte) error

	// LatestSnapshot returns the newest payload of datasetKey exported at or
	// before asOf. Returns apperrors.ErrNotFound when there is none.
	LatestSnapshot(ctx context.Context, datasetKey string, asOf time.Time) ([]byte, error)
}
