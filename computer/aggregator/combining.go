package aggregator

import "sync"

// Static and compile-time check to ensure Combining implements the
// Aggregator interface.
var _ Aggregator = (*Combining)(nil)

// Combining adapts a Combiner into an Aggregator. The first aggregated
// value seeds the accumulated value; later ones are folded in with the
// combiner. A mutex serialises concurrent folds so the combiner itself
// needs no synchronisation.
type Combining struct {
	mu      sync.Mutex
	combine Combiner

	value interface{}
	set   bool

	delta    interface{}
	hasDelta bool
}

// NewCombining returns an empty aggregator folding values with combine.
func NewCombining(combine Combiner) *Combining {
	return &Combining{combine: combine}
}

// Type returns the type of this aggregator.
func (a *Combining) Type() string { return "Combining" }

// Get returns the accumulated value, nil when nothing was aggregated.
func (a *Combining) Get() interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.value
}

// Set replaces the accumulated value and clears the pending delta.
func (a *Combining) Set(val interface{}) {
	a.mu.Lock()
	a.value, a.set = val, val != nil
	a.delta, a.hasDelta = nil, false
	a.mu.Unlock()
}

// Aggregate folds val into the accumulated value.
func (a *Combining) Aggregate(val interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.value, a.set = a.fold(a.value, a.set, val), true
	a.delta, a.hasDelta = a.fold(a.delta, a.hasDelta, val), true
}

// Delta returns the combination of the values aggregated since the last
// call to Delta or Set, nil when there were none.
func (a *Combining) Delta() interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	delta := a.delta
	a.delta, a.hasDelta = nil, false

	return delta
}

func (a *Combining) fold(acc interface{}, seeded bool, val interface{}) interface{} {
	// Without a combiner the last value wins.
	if !seeded || a.combine == nil {
		return val
	}

	return a.combine(acc, val)
}
