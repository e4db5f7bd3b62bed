package extract

import (
	"fmt"
	"time"
)

// Row is one record reduced to an ordered sequence of typed values, one
// per field descriptor.
type Row []any

// Extract walks each field's path through the nested record and returns
// the leaf value, or the kind's default when any step of the path is
// absent or falsy. The falsy rule is deliberate and matches the upstream
// contract: a leaf that is legitimately 0, false or "" is also replaced
// by the default, so descriptor tables must not probe fields where those
// are meaningful values.
//
// Datetime leaves are parsed from ISO-8601, converted to loc and returned
// with the offset stripped (naive wall time). The upstream encodes
// "no data" as year 1, which is treated as absent. A malformed datetime
// string is a fatal error, not a default.
func Extract(record map[string]any, fields []Field, loc *time.Location) (Row, error) {
	row := make(Row, 0, len(fields))
	for _, f := range fields {
		v, err := extractField(record, f, loc)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", f.Name(), err)
		}
		row = append(row, v)
	}
	return row, nil
}

func extractField(record map[string]any, f Field, loc *time.Location) (any, error) {
	if len(f.Path) == 0 {
		return nil, fmt.Errorf("empty field path")
	}

	cur := record[f.Path[0]]
	if falsy(cur) {
		return DefaultFor(f.Kind)
	}
	for _, seg := range f.Path[1:] {
		m, ok := cur.(map[string]any)
		if !ok {
			return DefaultFor(f.Kind)
		}
		next := m[seg]
		if falsy(next) {
			return DefaultFor(f.Kind)
		}
		cur = next
	}

	if f.Kind == KindDateTime || f.Kind == KindDate {
		s, ok := cur.(string)
		if !ok {
			return nil, fmt.Errorf("expected ISO-8601 string, got %T", cur)
		}
		return normalizeTime(s, f.Kind, loc)
	}
	return cur, nil
}

func normalizeTime(s string, kind Kind, loc *time.Location) (any, error) {
	t, err := parseISOTime(s)
	if err != nil {
		return nil, err
	}
	if t.Year() == 1 && t.Month() == time.January && t.Day() == 1 {
		return DefaultFor(kind)
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), time.UTC), nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseISOTime(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed timestamp %q", s)
}

// falsy reports whether a looked-up value counts as missing: absent keys,
// nil, false, zero numbers, empty strings and empty containers.
func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0
	case float32:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	default:
		return false
	}
}
