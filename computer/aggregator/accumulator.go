package aggregator

import (
	"math"
	"sync/atomic"
)

// Static and compile-time checks to ensure the accumulators implement
// the Aggregator interface.
var (
	_ Aggregator = (*Float64Accumulator)(nil)
	_ Aggregator = (*Int64Accumulator)(nil)
)

// Float64Accumulator is a lock-free accumulator for float64 values. The
// values are kept as their IEEE-754 bit patterns so they can be swapped
// atomically.
type Float64Accumulator struct {
	prevSum atomic.Uint64
	currSum atomic.Uint64
}

// Type returns the type of this accumulator.
func (a *Float64Accumulator) Type() string {
	return "Float64Accumulator"
}

// Get retrieves the current accumulator value.
func (a *Float64Accumulator) Get() interface{} {
	return math.Float64frombits(a.currSum.Load())
}

// Set the accumulator's current and previous sums to the specified value.
func (a *Float64Accumulator) Set(val interface{}) {
	bits := math.Float64bits(toFloat64(val))
	a.currSum.Store(bits)
	a.prevSum.Store(bits)
}

// Aggregate adds val to the current sum.
func (a *Float64Accumulator) Aggregate(val interface{}) {
	// Loop until a compare-swap operation succeeds.
	for value := toFloat64(val); ; {
		oldBits := a.currSum.Load()
		newValue := math.Float64frombits(oldBits) + value

		if a.currSum.CompareAndSwap(oldBits, math.Float64bits(newValue)) {
			return
		}
	}
}

// Delta returns the change in the accumulator's value since the last call
// to Delta or Set.
func (a *Float64Accumulator) Delta() interface{} {
	for {
		curr := a.currSum.Load()
		prev := a.prevSum.Load()

		if a.prevSum.CompareAndSwap(prev, curr) {
			return math.Float64frombits(curr) - math.Float64frombits(prev)
		}
	}
}

// Int64Accumulator is a lock-free accumulator for integer values.
type Int64Accumulator struct {
	prevSum atomic.Int64
	currSum atomic.Int64
}

// Type returns the type of this accumulator.
func (a *Int64Accumulator) Type() string {
	return "Int64Accumulator"
}

// Get retrieves the current accumulator value as an int64.
func (a *Int64Accumulator) Get() interface{} {
	return a.currSum.Load()
}

// Set the accumulator's current and previous sums to the specified value.
func (a *Int64Accumulator) Set(val interface{}) {
	value := toInt64(val)
	a.currSum.Store(value)
	a.prevSum.Store(value)
}

// Aggregate adds val to the current sum.
func (a *Int64Accumulator) Aggregate(val interface{}) {
	a.currSum.Add(toInt64(val))
}

// Delta returns the change in the accumulator's value since the last call
// to Delta or Set.
func (a *Int64Accumulator) Delta() interface{} {
	for {
		curr := a.currSum.Load()
		prev := a.prevSum.Load()

		if a.prevSum.CompareAndSwap(prev, curr) {
			return curr - prev
		}
	}
}
