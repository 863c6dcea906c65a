package rules

import (
	"strconv"
	"strings"
)

// Resolve walks a dot-notation path through a JSON-shaped document built
// from the closed value set string | float64 | bool | nil | []any |
// map[string]any. Numeric segments index into arrays.
//
// The boolean result distinguishes "missing" from a present null or false:
// absence at any segment returns (nil, false), while a present nil value
// returns (nil, true).
func Resolve(doc map[string]any, path string) (any, bool) {
	var current any = doc
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil, false
		}
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// asNumber coerces a resolved or rule value to float64 where the JSON shape
// allows it.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// valuesEqual implements strict equality over the closed JSON value set,
// with numeric values compared numerically regardless of Go's concrete
// type after decoding.
func valuesEqual(a, b any) bool {
	if an, ok := asNumber(a); ok {
		bn, ok := asNumber(b)
		return ok && an == bn
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}
