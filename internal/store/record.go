package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a single loosely-typed row. Values are whatever the source
// decoded: string, json.Number, bool, nil, []any or map[string]any.
// No field is guaranteed to be present.
type Record map[string]any

// Empty is the shared sentinel returned when a lookup finds nothing.
// It must never be written to.
var Empty = Record{}

// IsEmpty reports whether the record has no fields, which is how an
// unresolved join presents itself.
func (r Record) IsEmpty() bool {
	return len(r) == 0
}

// Get returns the raw value for field and whether it was present.
func (r Record) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// Str returns field as a string, or def when it is absent or not a scalar.
// Numbers keep their literal text.
func (r Record) Str(field, def string) string {
	s, ok := scalarString(r[field])
	if !ok {
		return def
	}
	return s
}

// NullableStr returns a pointer to the string value of field, or nil when the
// field is absent, null, or not a scalar. Used for pass-through fields that
// have no placeholder.
func (r Record) NullableStr(field string) *string {
	s, ok := scalarString(r[field])
	if !ok {
		return nil
	}
	return &s
}

// Int parses field as a base-10 integer. Missing or non-numeric values are 0.
func (r Record) Int(field string) int {
	switch v := r[field].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Float parses field as a float64. Missing or non-numeric values are 0.
func (r Record) Float(field string) float64 {
	switch v := r[field].(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Equals reports whether field holds exactly value. A nil value never
// matches, and values of different kinds never match ("1" != 1).
func (r Record) Equals(field string, value any) bool {
	if value == nil {
		return false
	}
	return equalValues(r[field], value)
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case json.Number:
		bv, ok := b.(json.Number)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	default:
		return false
	}
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	default:
		return "", false
	}
}

// indexKey returns a kind-qualified key so the index keeps the same
// equality rules as Equals.
func indexKey(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return "s:" + s, true
	case json.Number:
		return "n:" + s.String(), true
	case bool:
		return "b:" + strconv.FormatBool(s), true
	case float64:
		return "f:" + strconv.FormatFloat(s, 'g', -1, 64), true
	case int:
		return "i:" + strconv.Itoa(s), true
	default:
		return "", false
	}
}
