package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawRecord is one server-shaped object as decoded from the API. Its shape is
// owned by the backend and differs per endpoint.
type RawRecord map[string]any

// AsRecord returns v as a RawRecord, or an empty record when v is not an object.
func AsRecord(v any) RawRecord {
	switch m := v.(type) {
	case RawRecord:
		return m
	case map[string]any:
		return RawRecord(m)
	}
	return RawRecord{}
}

// Record returns the nested object under key. Missing keys, nulls and
// non-objects all give an empty record.
func (r RawRecord) Record(key string) RawRecord {
	if r == nil {
		return RawRecord{}
	}
	return AsRecord(r[key])
}

// Lookup walks path through nested objects. Any missing step yields nil.
func (r RawRecord) Lookup(path ...string) any {
	var cur any = r
	for _, k := range path {
		m := asMap(cur)
		if m == nil {
			return nil
		}
		v, ok := m[k]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// String returns the scalar at path as text. Objects, arrays, nulls and blank
// strings report false.
func (r RawRecord) String(path ...string) (string, bool) {
	return scalarText(r.Lookup(path...))
}

// First returns the first present scalar among paths.
func (r RawRecord) First(paths ...[]string) (string, bool) {
	for _, p := range paths {
		if s, ok := r.String(p...); ok {
			return s, true
		}
	}
	return "", false
}

// Text is First with a default.
func (r RawRecord) Text(def string, paths ...[]string) string {
	if s, ok := r.First(paths...); ok {
		return s
	}
	return def
}

// Bool reads a tri-state flag: nil when absent or null.
func (r RawRecord) Bool(path ...string) *bool {
	var b bool
	switch v := r.Lookup(path...).(type) {
	case bool:
		b = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		b = f != 0
	case float64:
		b = v != 0
	case string:
		p, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		b = p
	default:
		return nil
	}
	return &b
}

// P builds a lookup path.
func P(keys ...string) []string { return keys }

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case RawRecord:
		return m
	case map[string]any:
		return m
	}
	return nil
}

func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", false
		}
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}
