package neo4j

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// coerceValue maps a driver-native value onto the plain types graph.Record
// promises. Integers, floats, bools, and strings already arrive as Go
// primitives from the bolt codec; temporal values arrive as dbtype wrappers
// and are unwrapped to time.Time. Anything unrecognized passes through
// untouched, and the record accessors default it safely.
func coerceValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t
	case dbtype.Date:
		return t.Time()
	case dbtype.LocalDateTime:
		return t.Time()
	case dbtype.Time:
		return t.Time()
	case dbtype.LocalTime:
		return t.Time()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = coerceValue(e)
		}
		return out
	default:
		return v
	}
}
