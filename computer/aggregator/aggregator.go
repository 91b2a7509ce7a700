/*
	aggregator package provides the concurrent-safe reducers behind the
	graph computer's global memory. Vertex programs running in parallel
	within a superstep fold values into an Aggregator; the computer reads
	the aggregated value back at the superstep barrier.
*/

package aggregator

import "fmt"

// Aggregator is implemented by types that provide concurrent-safe
// aggregation primitives (e.g. counters, min/max).
type Aggregator interface {
	// Type returns the type of this aggregator.
	Type() string

	// Set the aggregator to the specified value.
	Set(val interface{})

	// Get the current aggregator value.
	Get() interface{}

	// Aggregate updates the aggregator's value based on the provided value.
	Aggregate(val interface{})

	// Delta returns the change in the aggregator's value since the last
	// call to Delta or Set.
	Delta() interface{}
}

// Combiner folds value into acc. Combiners used by the graph computer
// must be commutative and associative, since vertex execution order
// within a superstep is unspecified.
type Combiner func(acc, value interface{}) interface{}

// SumFloat64 adds float64 values.
func SumFloat64(acc, value interface{}) interface{} {
	return toFloat64(acc) + toFloat64(value)
}

// SumInt64 adds integer values.
func SumInt64(acc, value interface{}) interface{} {
	return toInt64(acc) + toInt64(value)
}

// MinFloat64 keeps the smallest float64 value.
func MinFloat64(acc, value interface{}) interface{} {
	a, v := toFloat64(acc), toFloat64(value)
	if v < a {
		return v
	}

	return a
}

// MaxFloat64 keeps the largest float64 value.
func MaxFloat64(acc, value interface{}) interface{} {
	a, v := toFloat64(acc), toFloat64(value)
	if v > a {
		return v
	}

	return a
}

// Or reports whether any of the folded booleans was true.
func Or(acc, value interface{}) interface{} {
	a, _ := acc.(bool)
	v, _ := value.(bool)

	return a || v
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case nil:
		return 0
	default:
		panic(fmt.Sprintf("aggregator: %T is not a number", v))
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case nil:
		return 0
	default:
		panic(fmt.Sprintf("aggregator: %T is not an integer", v))
	}
}
