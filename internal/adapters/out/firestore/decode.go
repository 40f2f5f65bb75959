// internal/adapters/out/firestore/decode.go
package firestore

// Stored records may predate the current schema (quantities written as
// doubles, prices as ints). Readers parse raw document data defensively and
// drop what they cannot decode instead of failing the whole query.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
