package fetcher

import "log"

// Unwrap normalizes a response body to its list payload. Accepted shapes are
// a bare array, {"data": [...]}, {"data": {<name>: [...]}} and {<name>: [...]}
// for any of names. Anything else is an empty list.
func Unwrap(body any, names ...string) []any {
	switch v := body.(type) {
	case []any:
		return v
	case map[string]any:
		if arr, ok := v["data"].([]any); ok {
			return arr
		}
		for _, k := range names {
			if arr, ok := v[k].([]any); ok {
				return arr
			}
		}
		if inner, ok := v["data"].(map[string]any); ok {
			return Unwrap(inner, names...)
		}
	}
	log.Printf("[FETCH][WARN] unrecognized envelope type=%T names=%v", body, names)
	return []any{}
}

func serverMessage(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m["message"].(string)
	return s
}
