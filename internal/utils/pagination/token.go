package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the keyset position of the last row returned by a page of transactions.
type Cursor struct {
	OccurredAt    time.Time
	TransactionID int64
}

// EncodeToken creates a base64 encoded token from an occurrence time and a transaction id.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%d", c.OccurredAt.UTC().Format(timeFormat), c.TransactionID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	occurredAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (occurred_at parse): %w", err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	return Cursor{OccurredAt: occurredAt, TransactionID: id}, nil
}

// Before reports whether a row at (occurredAt, id) sorts after the cursor in newest-first order.
func (c Cursor) Before(occurredAt time.Time, id int64) bool {
	if occurredAt.Equal(c.OccurredAt) {
		return id < c.TransactionID
	}
	return occurredAt.Before(c.OccurredAt)
}
