// Package graph defines the read contract against the procurement property
// graph. Adapters (pkg/graph/neo4j) translate driver-native values into plain
// Go values at this boundary, so the analytics layer never sees boxed driver
// types.
package graph

import (
	"context"
	"strconv"
	"time"
)

// Record is a single result row, mapping a returned column name to its
// coerced value. Values are one of: nil, bool, int64, float64, string,
// time.Time, or a []any of those.
type Record map[string]any

// Store executes a parameterized read query and returns its rows. Parameters
// are always passed separately from the query text; callers never build query
// strings out of user input. Implementations acquire whatever session or
// connection they need per call and release it on every exit path.
type Store interface {
	Run(ctx context.Context, query string, params map[string]any) ([]Record, error)
}

// Int reads a numeric column as int64. Driver integers, floats, and numeric
// strings all coerce; anything else defaults to zero rather than failing the
// whole row over one value.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return int64(f)
	}
	return 0
}

// Float reads a numeric column as float64, with the same tolerance as Int.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

// String reads a column as string, returning "" for null or non-string
// values.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Time reads a temporal column. The second return is false when the column
// is null or not a temporal value.
func (r Record) Time(key string) (time.Time, bool) {
	if v, ok := r[key].(time.Time); ok {
		return v, true
	}
	return time.Time{}, false
}
