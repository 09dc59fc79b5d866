// Package cast coerces raw input values to declared variable types.
//
// Casting never fails: values that cannot be represented in the target type
// come back as sentinels (NaN for numbers, the zero time for dates) that the
// field validator rejects downstream.
package cast

import (
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// Cast coerces value to the declared variable type. string, object and enum
// values pass through unchanged.
func Cast(value any, variableType models.VariableType) any {
	switch variableType {
	case models.TypeNumber:
		return Number(value)
	case models.TypeBoolean:
		return Bool(value)
	case models.TypeArray:
		return Array(value)
	case models.TypeDate:
		return Date(value)
	case models.TypeString, models.TypeObject, models.TypeEnum:
		return value
	default:
		return value
	}
}

// Number coerces value to a float64. Non-numeric input yields NaN.
func Number(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		if v {
			return 1
		}

		return 0
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return math.NaN()
		}

		return parsed
	default:
		return math.NaN()
	}
}

// Bool applies truthy coercion: nil, false, zero, NaN and the empty string
// are false; everything else, including empty slices and maps, is true.
func Bool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint64:
		return v != 0
	default:
		return true
	}
}

// Array passes slices through as []any and wraps any other value in a
// single-element slice.
func Array(value any) []any {
	if value == nil {
		return []any{nil}
	}

	if items, ok := value.([]any); ok {
		return items
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}

		return items
	}

	return []any{value}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date parses value into a time.Time. Unparseable input yields the zero
// time, which the field validator rejects as an invalid date.
func Date(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}

		return time.Time{}
	case float64:
		// Milliseconds since the Unix epoch.
		return time.UnixMilli(int64(v)).UTC()
	case int64:
		return time.UnixMilli(v).UTC()
	case int:
		return time.UnixMilli(int64(v)).UTC()
	default:
		return time.Time{}
	}
}
