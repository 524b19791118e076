package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// storedTimeLayout is fixed width so TEXT columns sort chronologically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// parseTime accepts stored values and plain RFC3339 from older rows.
func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// toJSON encodes v for a TEXT column.
func toJSON(field string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", field, err)
	}
	return string(data), nil
}

// fromJSON decodes a TEXT column into v.
func fromJSON(field, s string, v any) error {
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decoding %s: %w", field, err)
	}
	return nil
}

// nullableJSON decodes a nullable TEXT column. A NULL leaves v untouched and
// reports false.
func nullableJSON(field string, s sql.NullString, v any) (bool, error) {
	if !s.Valid || s.String == "" {
		return false, nil
	}
	return true, fromJSON(field, s.String, v)
}

// limitClause returns the LIMIT argument for SQLite, where -1 means no limit.
func limitClause(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
