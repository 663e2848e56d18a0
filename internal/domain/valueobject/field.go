// Package valueobject contains domain value objects for the admin dashboard.
package valueobject

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fields wraps the raw data of a schemaless document and decodes values
// leniently. A value of the wrong type decodes as absent instead of failing.
type Fields map[string]any

// String returns the field as a string, or "" when absent or not a string.
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// OptionalString returns the field as a string pointer, or nil when absent.
func (f Fields) OptionalString(key string) *string {
	s, ok := f[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Bool returns the field as a bool. Strings "true"/"false" are accepted.
func (f Fields) Bool(key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

// Int returns the field as a non-negative integer, or 0.
func (f Fields) Int(key string) int {
	n, ok := AsInt64(f[key])
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

// Decimal returns the field as a decimal amount, or zero when absent or non-numeric.
func (f Fields) Decimal(key string) decimal.Decimal {
	d, ok := AsDecimal(f[key])
	if !ok {
		return decimal.Zero
	}
	return d
}

// Time returns the field as an instant, or nil when absent or unparseable.
func (f Fields) Time(key string) *time.Time {
	t, ok := AsTime(f[key])
	if !ok {
		return nil
	}
	return &t
}

// AsDecimal converts a loosely typed value to a decimal.
func AsDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return AsDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// AsInt64 converts a loosely typed integral value.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return AsInt64(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// AsTime converts a loosely typed instant. Accepted shapes are time.Time,
// RFC 3339 strings, Unix epoch milliseconds, and timestamp objects with
// "seconds"/"nanoseconds" (or "_seconds"/"_nanoseconds") members.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t))
		return parsed, err == nil
	case map[string]any:
		secs, ok := AsInt64(firstPresent(t, "seconds", "_seconds"))
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := AsInt64(firstPresent(t, "nanoseconds", "_nanoseconds"))
		return time.Unix(secs, nanos).UTC(), true
	default:
		millis, ok := AsInt64(v)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(millis).UTC(), true
	}
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
