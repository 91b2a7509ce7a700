package graph

import (
	"fmt"
	"math"
	"reflect"
)

// opaqueKey wraps the formatted representation of a value that cannot be
// used as a map key so that it never collides with a real string value.
type opaqueKey string

// NormalizeValue maps numeric values onto a canonical representation:
// every integer kind becomes int64 (uint64 values above math.MaxInt64 are
// kept as uint64), float32 becomes float64 and floats holding an integral
// value become int64. Other values are returned unchanged.
func NormalizeValue(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return normalizeUint(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return normalizeUint(n)
	case float32:
		return normalizeFloat(float64(n))
	case float64:
		return normalizeFloat(n)
	default:
		return v
	}
}

func normalizeUint(n uint64) interface{} {
	if n > math.MaxInt64 {
		return n
	}

	return int64(n)
}

func normalizeFloat(f float64) interface{} {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}

	return f
}

// ValueKey returns a value suitable for use as a map key such that two
// values have the same key exactly when ValuesEqual reports them equal.
// Element handles are canonical and therefore used as-is.
func ValueKey(v interface{}) interface{} {
	v = NormalizeValue(v)
	if v == nil {
		return nil
	}

	// NaN never equals itself so it cannot be used as a map key directly.
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return opaqueKey("float/NaN")
	}

	if reflect.TypeOf(v).Comparable() {
		return v
	}

	return opaqueKey(fmt.Sprintf("%T/%v", v, v))
}

// ValuesEqual reports whether two property values are equal under the
// normalisation rules shared by the key index and full scans.
func ValuesEqual(a, b interface{}) bool {
	return ValueKey(a) == ValueKey(b)
}

// ValidateKey rejects empty property keys and the reserved keys id and
// label.
func ValidateKey(key string) error {
	switch key {
	case "":
		return fmt.Errorf("empty key: %w", ErrInvalidKey)
	case "id", "label":
		return fmt.Errorf("%q is a reserved key: %w", key, ErrInvalidKey)
	}

	return nil
}
