package traversal

import (
	"fmt"
	"sort"

	"github.com/mycok/uGraph/graph"
)

// ReducingStep drains its upstream into an accumulator and emits a single
// traverser holding the result.
type ReducingStep struct {
	*baseStep
	seed   func() interface{}
	reduce func(acc interface{}, t *Traverser) (interface{}, error)
	// finish converts the accumulator into the emitted value; false emits
	// nothing.
	finish func(acc interface{}) (interface{}, bool)
	done   bool
}

func newReducingStep(
	name string,
	seed func() interface{},
	reduce func(acc interface{}, t *Traverser) (interface{}, error),
	finish func(acc interface{}) (interface{}, bool),
) *ReducingStep {

	s := &ReducingStep{baseStep: newBaseStep(name), seed: seed, reduce: reduce, finish: finish}
	s.processNext = s.processNextStart
	s.onReset = func() { s.done = false }

	return s
}

func (s *ReducingStep) processNextStart() (*Traverser, error) {
	if s.done {
		return nil, nil
	}

	acc := s.seed()
	for {
		t, err := s.pull()
		if err != nil {
			return nil, err
		}

		if t == nil {
			break
		}

		if acc, err = s.reduce(acc, t); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}

	s.done = true

	val := acc
	if s.finish != nil {
		var ok bool
		if val, ok = s.finish(acc); !ok {
			return nil, nil
		}
	}

	return s.generate(val, 1), nil
}

func newCountStep() *ReducingStep {
	return newReducingStep("CountGlobalStep",
		func() interface{} { return int64(0) },
		func(acc interface{}, t *Traverser) (interface{}, error) { return acc.(int64) + t.bulk, nil },
		nil,
	)
}

type numericAcc struct {
	sum   float64
	count int64
	best  interface{}
}

func newSumStep() *ReducingStep {
	return newReducingStep("SumGlobalStep",
		func() interface{} { return &numericAcc{} },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			a := acc.(*numericAcc)
			f, err := number(t.value)
			if err != nil {
				return nil, err
			}

			a.sum += f * float64(t.bulk)

			return a, nil
		},
		func(acc interface{}) (interface{}, bool) { return acc.(*numericAcc).sum, true },
	)
}

func newMeanStep() *ReducingStep {
	return newReducingStep("MeanGlobalStep",
		func() interface{} { return &numericAcc{} },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			a := acc.(*numericAcc)
			f, err := number(t.value)
			if err != nil {
				return nil, err
			}

			a.sum += f * float64(t.bulk)
			a.count += t.bulk

			return a, nil
		},
		func(acc interface{}) (interface{}, bool) {
			a := acc.(*numericAcc)
			if a.count == 0 {
				return nil, false
			}

			return a.sum / float64(a.count), true
		},
	)
}

// newExtremeStep builds min (sign -1) and max (sign 1).
func newExtremeStep(name string, sign int) *ReducingStep {
	return newReducingStep(name,
		func() interface{} { return &numericAcc{} },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			a := acc.(*numericAcc)
			if a.best == nil {
				a.best = t.value

				return a, nil
			}

			c, err := Compare(t.value, a.best)
			if err != nil {
				return nil, err
			}

			if c*sign > 0 {
				a.best = t.value
			}

			return a, nil
		},
		func(acc interface{}) (interface{}, bool) {
			a := acc.(*numericAcc)

			return a.best, a.best != nil
		},
	)
}

func newFoldStep() *ReducingStep {
	return newReducingStep("FoldStep",
		func() interface{} { return []interface{}{} },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			list := acc.([]interface{})
			for i := int64(0); i < t.bulk; i++ {
				list = append(list, t.value)
			}

			return list, nil
		},
		nil,
	)
}

func newFoldWithStep(seed interface{}, fn func(acc, value interface{}) interface{}) *ReducingStep {
	return newReducingStep("FoldStep(seed)",
		func() interface{} { return seed },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			for i := int64(0); i < t.bulk; i++ {
				acc = fn(acc, t.value)
			}

			return acc, nil
		},
		nil,
	)
}

func newGroupCountMapStep(keyFn func(*Traverser) (interface{}, error)) *ReducingStep {
	return newReducingStep("GroupCountStep",
		func() interface{} { return make(map[interface{}]int64) },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			counts := acc.(map[interface{}]int64)

			return counts, addGroupCount(counts, t, keyFn)
		},
		nil,
	)
}

func newGroupMapStep(grouping Grouping) *ReducingStep {
	return newReducingStep("GroupStep",
		func() interface{} { return newGroupState(grouping) },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			state := acc.(*groupState)
			_, err := state.add(t)

			return state, err
		},
		func(acc interface{}) (interface{}, bool) { return acc.(*groupState).result(), true },
	)
}

// treeMapStep is the barrier form of tree.
type treeMapStep struct {
	*ReducingStep
}

func newTreeMapStep() *treeMapStep {
	return &treeMapStep{ReducingStep: newReducingStep("TreeStep",
		func() interface{} { return make(Tree) },
		func(acc interface{}, t *Traverser) (interface{}, error) {
			if t.path == nil {
				return nil, fmt.Errorf("path is not tracked: %w", ErrInvalidArgument)
			}

			acc.(Tree).addPath(t.path.objects)

			return acc, nil
		},
		nil,
	)}
}

func (s *treeMapStep) requiresPath() bool { return true }

// number converts a numeric value to float64.
func number(v interface{}) (float64, error) {
	n := graph.NormalizeValue(v)
	if !isNumber(n) {
		return 0, fmt.Errorf("expected a number, got %T: %w", v, ErrInvalidArgument)
	}

	return toFloat64(n), nil
}

// newLocalReduceStep applies a reduction to the collection held by each
// traverser.
func newLocalReduceStep(name string, reduce func(items []interface{}) (interface{}, bool, error)) *FlatMapStep {
	return newFlatMapStep(name, func(t *Traverser) ([]interface{}, error) {
		items, ok := asSlice(t.value)
		if !ok {
			if entries, isMap := asEntries(t.value); isMap {
				items = entries
			} else {
				items = []interface{}{t.value}
			}
		}

		val, emit, err := reduce(items)
		if err != nil || !emit {
			return nil, err
		}

		return []interface{}{val}, nil
	})
}

func localCount(items []interface{}) (interface{}, bool, error) {
	return int64(len(items)), true, nil
}

func localSum(items []interface{}) (interface{}, bool, error) {
	var sum float64
	for _, item := range items {
		f, err := number(item)
		if err != nil {
			return nil, false, err
		}

		sum += f
	}

	return sum, true, nil
}

func localMean(items []interface{}) (interface{}, bool, error) {
	if len(items) == 0 {
		return nil, false, nil
	}

	sum, _, err := localSum(items)
	if err != nil {
		return nil, false, err
	}

	return sum.(float64) / float64(len(items)), true, nil
}

func localExtreme(sign int) func(items []interface{}) (interface{}, bool, error) {
	return func(items []interface{}) (interface{}, bool, error) {
		var best interface{}
		for _, item := range items {
			if best == nil {
				best = item

				continue
			}

			c, err := Compare(item, best)
			if err != nil {
				return nil, false, err
			}

			if c*sign > 0 {
				best = item
			}
		}

		return best, best != nil, nil
	}
}

// Comparator orders two values, returning a negative number, zero or a
// positive number.
type Comparator func(a, b interface{}) (int, error)

// OrderStep sorts the traverser stream (global) or each traverser's
// collection (local). Sorting is stable.
type OrderStep struct {
	*baseStep
	scope      Scope
	comparator Comparator

	sorted []*Traverser
	done   bool
}

func newOrderStep(scope Scope, comparator Comparator) *OrderStep {
	if comparator == nil {
		comparator = Compare
	}

	s := &OrderStep{baseStep: newBaseStep("OrderStep(" + scope.String() + ")"), scope: scope, comparator: comparator}
	s.processNext = s.processNextStart
	s.onReset = func() { s.sorted, s.done = nil, false }

	return s
}

func (s *OrderStep) processNextStart() (*Traverser, error) {
	if s.scope == Local {
		return s.processLocal()
	}

	if !s.done {
		for {
			t, err := s.pull()
			if err != nil {
				return nil, err
			}

			if t == nil {
				break
			}

			s.sorted = append(s.sorted, t)
		}

		s.done = true

		var sortErr error
		sort.SliceStable(s.sorted, func(i, j int) bool {
			c, err := s.comparator(s.sorted[i].value, s.sorted[j].value)
			if err != nil && sortErr == nil {
				sortErr = err
			}

			return c < 0
		})

		if sortErr != nil {
			s.sorted = nil

			return nil, fmt.Errorf("%s: %w", s.name, sortErr)
		}
	}

	if len(s.sorted) == 0 {
		return nil, nil
	}

	t := s.sorted[0]
	s.sorted = s.sorted[1:]

	return s.pass(t), nil
}

func (s *OrderStep) processLocal() (*Traverser, error) {
	t, err := s.pull()
	if err != nil || t == nil {
		return nil, err
	}

	items, ok := asSlice(t.value)
	if !ok {
		return s.pass(t), nil
	}

	items = append([]interface{}(nil), items...)

	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		c, err := s.comparator(items[i], items[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}

		return c < 0
	})

	if sortErr != nil {
		return nil, fmt.Errorf("%s: %w", s.name, sortErr)
	}

	return s.emit(t, items), nil
}

// BarrierStep drains its upstream and merges traversers that are
// indistinguishable (same value, loops and path) into one traverser whose
// bulk is the sum of theirs. Output keeps first-seen order.
type BarrierStep struct {
	*baseStep
	merged []*Traverser
	done   bool
}

type bulkKey struct {
	value interface{}
	loops int
	path  string
}

func newBarrierStep() *BarrierStep {
	s := &BarrierStep{baseStep: newBaseStep("NoOpBarrierStep")}
	s.processNext = s.processNextStart
	s.onReset = func() { s.merged, s.done = nil, false }

	return s
}

func (s *BarrierStep) processNextStart() (*Traverser, error) {
	if !s.done {
		index := make(map[bulkKey]*Traverser)
		mem := s.memory()

		for {
			t, err := s.pull()
			if err != nil {
				return nil, err
			}

			if t == nil {
				break
			}

			key := bulkKey{value: graph.ValueKey(t.value), loops: t.loops, path: t.path.key()}
			if existing, found := index[key]; found {
				existing.bulk += t.bulk
				existing.sack = mem.mergeSacks(existing.sack, t.sack)

				continue
			}

			c := s.pass(t).clone()
			index[key] = c
			s.merged = append(s.merged, c)
		}

		s.done = true
	}

	if len(s.merged) == 0 {
		return nil, nil
	}

	t := s.merged[0]
	s.merged = s.merged[1:]

	return t, nil
}

// sampleStep keeps a uniform random sample of the stream (global) or of
// each traverser's collection (local).
type sampleStep struct {
	*baseStep
	scope  Scope
	amount int

	sampled []*Traverser
	done    bool
}

func newSampleStep(scope Scope, amount int) *sampleStep {
	s := &sampleStep{
		baseStep: newBaseStep(fmt.Sprintf("SampleStep(%s,%d)", scope, amount)),
		scope:    scope,
		amount:   amount,
	}
	s.processNext = s.processNextStart
	s.onReset = func() { s.sampled, s.done = nil, false }

	return s
}

func (s *sampleStep) processNextStart() (*Traverser, error) {
	rnd := s.traversal.root().rnd

	if s.scope == Local {
		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		items, ok := asSlice(t.value)
		if !ok {
			return s.pass(t), nil
		}

		picked := append([]interface{}(nil), items...)
		rnd.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

		if len(picked) > s.amount {
			picked = picked[:s.amount]
		}

		return s.emit(t, picked), nil
	}

	if !s.done {
		// Reservoir sampling over bulk units.
		var seen int64
		for {
			t, err := s.pull()
			if err != nil {
				return nil, err
			}

			if t == nil {
				break
			}

			for i := int64(0); i < t.bulk; i++ {
				seen++

				unit := s.pass(t).clone()
				unit.bulk = 1

				if len(s.sampled) < s.amount {
					s.sampled = append(s.sampled, unit)

					continue
				}

				if j := rnd.Int63n(seen); j < int64(s.amount) {
					s.sampled[j] = unit
				}
			}
		}

		s.done = true
	}

	if len(s.sampled) == 0 {
		return nil, nil
	}

	t := s.sampled[0]
	s.sampled = s.sampled[1:]

	return t, nil
}
