package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	timeFormat = time.RFC3339Nano
	separator  = "|"
)

// Cursor marks the last audit entry of a page. Pages are ordered by
// (RecordedAt, EntryID) descending, so the next page starts strictly below it.
type Cursor struct {
	RecordedAt time.Time
	EntryID    string
}

// Token encodes the cursor as base64("<RFC3339Nano UTC>|<entry id>").
func (c Cursor) Token() string {
	raw := c.RecordedAt.UTC().Format(timeFormat) + separator + c.EntryID
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes a token produced by Cursor.Token.
func ParseCursor(token string) (Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	// entry ids never contain the separator; timestamps never do either
	ts, id, found := strings.Cut(string(raw), separator)
	if !found || id == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	recordedAt, err := time.Parse(timeFormat, ts)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return Cursor{RecordedAt: recordedAt, EntryID: id}, nil
}
