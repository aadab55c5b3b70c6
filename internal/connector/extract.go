package connector

import (
	"fmt"
	"strings"
)

// Row-level extraction defaults. A partially populated record is more
// useful downstream than a dropped one, so missing fields fall back to
// these literals instead of omitting the field.
const (
	defaultTitle    = "Untitled task"
	defaultStatus   = "Active"
	defaultAssignee = "Unassigned"
)

// stringAt walks a fallback chain of keys over a loosely-typed row and
// returns the first non-empty value, or def when none of the keys hold
// one. Numeric values are rendered without a decimal part so source ids
// decoded as float64 stay stable.
func stringAt(row map[string]any, def string, keys ...string) string {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}

		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		case float64:
			if val == float64(int64(val)) {
				return fmt.Sprintf("%d", int64(val))
			}
			return fmt.Sprintf("%v", val)
		case bool:
			return fmt.Sprintf("%t", val)
		}
	}

	return def
}

// nestedAt returns a child object of the row, or nil when the key is
// absent or not an object.
func nestedAt(row map[string]any, key string) map[string]any {
	if v, ok := row[key].(map[string]any); ok {
		return v
	}
	return nil
}

// listAt walks a fallback chain of keys and returns the first value
// that is a list of objects. Sources disagree on what the row
// collection is called, so the collection itself gets a fallback chain
// too.
func listAt(body map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		raw, ok := body[key].([]any)
		if !ok {
			continue
		}

		rows := make([]map[string]any, 0, len(raw))
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}

		return rows
	}

	return nil
}
