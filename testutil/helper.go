// Package testutil provides shared go-cmp helpers for comparing decoded
// deserialize.Value/ToNative output against expected Go values, the same
// role testutil played for kaitaistruct's ParsedData trees.
package testutil

import (
	"math"

	"github.com/google/go-cmp/cmp"
)

// ConvertToInt64 converts various numeric types to int64 for comparison.
// Returns the int64 value and a boolean indicating success.
func ConvertToInt64(i any) (int64, bool) {
	switch v := i.(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
		return 0, false
	case float32:
		if v == float32(int64(v)) {
			return int64(v), true
		}
		return 0, false
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
		return 0, false
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// NumericComparer is a cmp.Comparer for comparing the decoded output of an
// Array(dt)/Scalar leaf against a test's expected literal without having
// to spell out the exact Go numeric type on both sides (e.g. an expected
// plain `int` literal against a decoded `int32` element). It applies only
// where both values are numeric; maps, slices and other values are walked
// by cmp as usual, so it also works on whole ToNative output trees.
var NumericComparer = cmp.FilterValues(func(x, y any) bool {
	numeric := func(v any) bool {
		_, isInt := ConvertToInt64(v)
		_, isFloat := toFloat64(v)
		return isInt || isFloat
	}
	return numeric(x) && numeric(y)
}, cmp.Comparer(func(x, y any) bool {
	xInt, xOk := ConvertToInt64(x)
	yInt, yOk := ConvertToInt64(y)
	if xOk && yOk {
		return xInt == yInt
	}
	if xFloat, xIsFloat := toFloat64(x); xIsFloat {
		if yFloat, yIsFloat := toFloat64(y); yIsFloat {
			return math.Abs(xFloat-yFloat) < 1e-6
		}
	}
	return cmp.Equal(x, y)
}))

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	default:
		return 0, false
	}
}
