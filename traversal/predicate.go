package traversal

import (
	"fmt"
	"math"
	"strings"

	"github.com/mycok/uGraph/graph"
)

// P is a predicate over a single value. Predicates are values so that the
// optimizer can inspect them (an equality test on an indexed key).
type P struct {
	name   string
	args   []interface{}
	remake func(args ...interface{}) P
	test   func(v interface{}) (bool, error)
}

// Test evaluates the predicate against v.
func (p P) Test(v interface{}) (bool, error) {
	return p.test(v)
}

// Name returns the predicate operator name.
func (p P) Name() string { return p.name }

// Args returns the predicate arguments.
func (p P) Args() []interface{} { return append([]interface{}(nil), p.args...) }

// IsEq reports whether p is an equality test, returning its operand.
func (p P) IsEq() (interface{}, bool) {
	if p.name != "eq" {
		return nil, false
	}

	return p.args[0], true
}

// String returns a representation such as gt(29).
func (p P) String() string {
	parts := make([]string, len(p.args))
	for i, arg := range p.args {
		parts[i] = fmt.Sprint(arg)
	}

	return p.name + "(" + strings.Join(parts, ", ") + ")"
}

// withArgs rebuilds the predicate with different arguments, used to
// resolve label references in where.
func (p P) withArgs(args ...interface{}) P {
	return p.remake(args...)
}

// Eq matches values equal to v.
func Eq(v interface{}) P {
	return P{
		name:   "eq",
		args:   []interface{}{v},
		remake: func(a ...interface{}) P { return Eq(a[0]) },
		test:   func(x interface{}) (bool, error) { return graph.ValuesEqual(x, v), nil },
	}
}

// Neq matches values not equal to v.
func Neq(v interface{}) P {
	return P{
		name:   "neq",
		args:   []interface{}{v},
		remake: func(a ...interface{}) P { return Neq(a[0]) },
		test:   func(x interface{}) (bool, error) { return !graph.ValuesEqual(x, v), nil },
	}
}

// Lt matches values less than v.
func Lt(v interface{}) P {
	return ordering("lt", v, func(c int) bool { return c < 0 }, Lt)
}

// Lte matches values less than or equal to v.
func Lte(v interface{}) P {
	return ordering("lte", v, func(c int) bool { return c <= 0 }, Lte)
}

// Gt matches values greater than v.
func Gt(v interface{}) P {
	return ordering("gt", v, func(c int) bool { return c > 0 }, Gt)
}

// Gte matches values greater than or equal to v.
func Gte(v interface{}) P {
	return ordering("gte", v, func(c int) bool { return c >= 0 }, Gte)
}

func ordering(name string, v interface{}, accept func(int) bool, ctor func(interface{}) P) P {
	return P{
		name:   name,
		args:   []interface{}{v},
		remake: func(a ...interface{}) P { return ctor(a[0]) },
		test: func(x interface{}) (bool, error) {
			c, err := Compare(x, v)
			if err != nil {
				return false, err
			}

			return accept(c), nil
		},
	}
}

// Inside matches values strictly between low and high.
func Inside(low, high interface{}) P {
	return bounded("inside", low, high, Inside, func(cl, ch int) bool { return cl > 0 && ch < 0 })
}

// Outside matches values strictly below low or strictly above high.
func Outside(low, high interface{}) P {
	return bounded("outside", low, high, Outside, func(cl, ch int) bool { return cl < 0 || ch > 0 })
}

// Between matches values in the half-open interval [low, high).
func Between(low, high interface{}) P {
	return bounded("between", low, high, Between, func(cl, ch int) bool { return cl >= 0 && ch < 0 })
}

func bounded(
	name string, low, high interface{},
	ctor func(low, high interface{}) P, accept func(cl, ch int) bool,
) P {

	return P{
		name:   name,
		args:   []interface{}{low, high},
		remake: func(a ...interface{}) P { return ctor(a[0], a[1]) },
		test: func(x interface{}) (bool, error) {
			cl, err := Compare(x, low)
			if err != nil {
				return false, err
			}

			ch, err := Compare(x, high)
			if err != nil {
				return false, err
			}

			return accept(cl, ch), nil
		},
	}
}

// Within matches values equal to any of values.
func Within(values ...interface{}) P {
	return P{
		name:   "within",
		args:   values,
		remake: Within,
		test:   func(x interface{}) (bool, error) { return contains(values, x), nil },
	}
}

// Without matches values equal to none of values.
func Without(values ...interface{}) P {
	return P{
		name:   "without",
		args:   values,
		remake: Without,
		test:   func(x interface{}) (bool, error) { return !contains(values, x), nil },
	}
}

func contains(values []interface{}, x interface{}) bool {
	for _, v := range values {
		if graph.ValuesEqual(v, x) {
			return true
		}
	}

	return false
}

// Compare orders two values. Numbers compare numerically across integer
// and float kinds, strings lexically and booleans with false before true.
// Any other combination fails with ErrIncomparableTypes.
func Compare(a, b interface{}) (int, error) {
	a, b = graph.NormalizeValue(a), graph.NormalizeValue(b)

	if isNumber(a) && isNumber(b) {
		return compareNumbers(a, b), nil
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0, nil
			case !x:
				return -1, nil
			default:
				return 1, nil
			}
		}
	}

	return 0, fmt.Errorf("compare %T with %T: %w", a, b, ErrIncomparableTypes)
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int64, uint64, float64:
		return true
	default:
		return false
	}
}

// compareNumbers compares normalised numbers. A uint64 only survives
// normalisation when it exceeds math.MaxInt64.
func compareNumbers(a, b interface{}) int {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmpInt64(x, y)
		case uint64:
			return -1
		}
	case uint64:
		switch y := b.(type) {
		case int64:
			return 1
		case uint64:
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}

	return cmpFloat64(toFloat64(a), toFloat64(b))
}

func cmpInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	case math.IsNaN(x) && !math.IsNaN(y):
		return -1
	case !math.IsNaN(x) && math.IsNaN(y):
		return 1
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch n := graph.NormalizeValue(v).(type) {
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float64:
		return n
	default:
		return math.NaN()
	}
}
