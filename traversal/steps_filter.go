package traversal

import (
	"fmt"
	"strings"
	"time"

	"github.com/mycok/uGraph/graph"
)

// FilterStep forwards the traversers for which a predicate holds.
type FilterStep struct {
	*baseStep
	fn func(*Traverser) (bool, error)
}

func newFilterStep(name string, fn func(*Traverser) (bool, error)) *FilterStep {
	s := &FilterStep{baseStep: newBaseStep(name), fn: fn}
	s.processNext = s.processNextStart

	return s
}

func (s *FilterStep) processNextStart() (*Traverser, error) {
	for {
		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		ok, err := s.test(t, func() (bool, error) { return s.fn(t) })
		if err != nil {
			return nil, err
		}

		if ok {
			return s.pass(t), nil
		}
	}
}

// HasStep forwards elements matching every one of its conditions.
type HasStep struct {
	*FilterStep
	containers []HasContainer
}

func newHasStep(containers ...HasContainer) *HasStep {
	conds := make([]string, len(containers))
	for i, h := range containers {
		conds[i] = h.String()
	}

	s := &HasStep{containers: containers}
	s.FilterStep = newFilterStep("HasStep(["+strings.Join(conds, ",")+"])", func(t *Traverser) (bool, error) {
		return testAll(s.containers, t.value)
	})

	return s
}

// Containers returns the conditions of the step.
func (s *HasStep) Containers() []HasContainer {
	return append([]HasContainer(nil), s.containers...)
}

func newIsStep(p P) *FilterStep {
	return newFilterStep("IsStep("+p.String()+")", func(t *Traverser) (bool, error) {
		return p.Test(t.value)
	})
}

func newPropertyKeyStep(keys ...string) *FilterStep {
	return newFilterStep("HasKeyStep(["+strings.Join(keys, ",")+"])", func(t *Traverser) (bool, error) {
		switch v := t.value.(type) {
		case graph.Property:
			return stringIn(keys, v.Key), nil
		case graph.Element:
			for _, key := range v.Keys() {
				if stringIn(keys, key) {
					return true, nil
				}
			}
		}

		return false, nil
	})
}

func newPropertyValueStep(values ...interface{}) *FilterStep {
	return newFilterStep(fmt.Sprintf("HasValueStep(%v)", values), func(t *Traverser) (bool, error) {
		switch v := t.value.(type) {
		case graph.Property:
			return contains(values, v.Value), nil
		case graph.Element:
			for _, p := range v.Properties() {
				if contains(values, p.Value) {
					return true, nil
				}
			}
		}

		return false, nil
	})
}

func stringIn(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}

// whereStep compares a labeled (or the current) value against other
// labeled values. String arguments of the predicate name labels.
type whereStep struct {
	*FilterStep
	startLabel string
	predicate  P
}

func newWhereStep(startLabel string, p P) *whereStep {
	s := &whereStep{startLabel: startLabel, predicate: p}
	s.FilterStep = newFilterStep(fmt.Sprintf("WhereStep(%s,%s)", startLabel, p), s.evaluate)

	return s
}

func (s *whereStep) requiresPath() bool { return true }

func (s *whereStep) evaluate(t *Traverser) (bool, error) {
	start := t.value
	if s.startLabel != "" {
		val, err := s.resolve(t, s.startLabel)
		if err != nil {
			return false, err
		}

		start = val
	}

	args := s.predicate.Args()
	for i, arg := range args {
		if label, ok := arg.(string); ok {
			val, err := s.resolve(t, label)
			if err != nil {
				return false, err
			}

			args[i] = val
		}
	}

	return s.predicate.withArgs(args...).Test(start)
}

// traversalFilterStep filters on whether nested traversals yield any
// result for the traverser.
type traversalFilterStep struct {
	*FilterStep
	subs []*Traversal
	mode string
}

const (
	filterAnd = "and"
	filterOr  = "or"
	filterNot = "not"
)

func newTraversalFilterStep(mode string, subs ...*Traversal) *traversalFilterStep {
	parts := make([]string, len(subs))
	for i, sub := range subs {
		parts[i] = sub.String()
	}

	s := &traversalFilterStep{subs: subs, mode: mode}
	s.FilterStep = newFilterStep(
		fmt.Sprintf("TraversalFilterStep(%s,%s)", mode, strings.Join(parts, ",")),
		s.evaluate,
	)

	return s
}

func (s *traversalFilterStep) children() []*Traversal { return s.subs }

func (s *traversalFilterStep) evaluate(t *Traverser) (bool, error) {
	for _, sub := range s.subs {
		ok, err := yields(sub, t)
		if err != nil {
			return false, err
		}

		switch s.mode {
		case filterOr:
			if ok {
				return true, nil
			}
		case filterNot:
			return !ok, nil
		default:
			if !ok {
				return false, nil
			}
		}
	}

	return s.mode != filterOr, nil
}

// yields feeds t into sub and reports whether sub produces anything.
func yields(sub *Traversal, t *Traverser) (bool, error) {
	sub.feed(t)

	return sub.end().HasNext()
}

// drain feeds t into sub and collects every traverser it produces.
func drain(sub *Traversal, t *Traverser) ([]*Traverser, error) {
	sub.feed(t)

	var out []*Traverser
	for {
		has, err := sub.end().HasNext()
		if err != nil {
			return nil, err
		}

		if !has {
			return out, nil
		}

		tr, err := sub.end().Next()
		if err != nil {
			return nil, err
		}

		out = append(out, tr)
	}
}

// DedupStep suppresses values already emitted by the step instance.
type DedupStep struct {
	*baseStep
	scope Scope
	seen  map[interface{}]struct{}
}

func newDedupStep(scope Scope) *DedupStep {
	s := &DedupStep{baseStep: newBaseStep("DedupStep(" + scope.String() + ")"), scope: scope}
	s.processNext = s.processNextStart
	s.onReset = func() { s.seen = nil }

	return s
}

func (s *DedupStep) processNextStart() (*Traverser, error) {
	for {
		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		if s.scope == Local {
			items, ok := asSlice(t.value)
			if !ok {
				return s.pass(t), nil
			}

			return s.emit(t, dedupItems(items)), nil
		}

		if s.seen == nil {
			s.seen = make(map[interface{}]struct{})
		}

		key := graph.ValueKey(t.value)
		if _, exists := s.seen[key]; exists {
			continue
		}

		s.seen[key] = struct{}{}

		out := s.pass(t).clone()
		out.bulk = 1

		return out, nil
	}
}

func dedupItems(items []interface{}) []interface{} {
	seen := make(map[interface{}]struct{}, len(items))
	result := make([]interface{}, 0, len(items))

	for _, item := range items {
		key := graph.ValueKey(item)
		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		result = append(result, item)
	}

	return result
}

// RangeStep forwards the traversers at stream positions [low, high). A
// negative high leaves the window unbounded. Bulked traversers count as
// bulk positions.
type RangeStep struct {
	*baseStep
	scope   Scope
	low     int64
	high    int64
	counter int64
}

func newRangeStep(scope Scope, low, high int64) *RangeStep {
	s := &RangeStep{
		baseStep: newBaseStep(fmt.Sprintf("RangeStep(%s,%d,%d)", scope, low, high)),
		scope:    scope,
		low:      low,
		high:     high,
	}
	s.processNext = s.processNextStart
	s.onReset = func() { s.counter = 0 }

	return s
}

// Low returns the inclusive lower bound.
func (s *RangeStep) Low() int64 { return s.low }

// High returns the exclusive upper bound, negative when unbounded.
func (s *RangeStep) High() int64 { return s.high }

func (s *RangeStep) processNextStart() (*Traverser, error) {
	if s.scope == Local {
		return s.processLocal()
	}

	for {
		if s.high >= 0 && s.counter >= s.high {
			return nil, nil
		}

		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		start, end := s.counter, s.counter+t.bulk
		s.counter = end

		lo, hi := max64(start, s.low), end
		if s.high >= 0 && s.high < hi {
			hi = s.high
		}

		if hi <= lo {
			continue
		}

		out := s.pass(t)
		if hi-lo != t.bulk {
			out = out.clone()
			out.bulk = hi - lo
		}

		return out, nil
	}
}

func (s *RangeStep) processLocal() (*Traverser, error) {
	for {
		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		items, ok := asSlice(t.value)
		if !ok {
			if s.low == 0 && s.high != 0 {
				return s.pass(t), nil
			}

			continue
		}

		lo, hi := s.low, int64(len(items))
		if s.high >= 0 && s.high < hi {
			hi = s.high
		}

		if lo > hi {
			lo = hi
		}

		window := append([]interface{}(nil), items[lo:hi]...)
		if s.high == s.low+1 {
			if len(window) == 0 {
				continue
			}

			return s.emit(t, window[0]), nil
		}

		return s.emit(t, window), nil
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

// collectionFilterStep implements except and retain against a fixed
// collection or one resolved from a label or side effect.
type collectionFilterStep struct {
	*FilterStep
	key    string
	values []interface{}
	retain bool
}

func newCollectionFilterStep(retain bool, key string, values ...interface{}) *collectionFilterStep {
	name := "ExceptStep"
	if retain {
		name = "RetainStep"
	}

	s := &collectionFilterStep{key: key, values: values, retain: retain}
	s.FilterStep = newFilterStep(fmt.Sprintf("%s(%s%v)", name, key, values), s.evaluate)

	return s
}

func (s *collectionFilterStep) evaluate(t *Traverser) (bool, error) {
	values := s.values
	if s.key != "" {
		resolved, err := s.resolve(t, s.key)
		if err != nil {
			return false, err
		}

		if items, ok := asSlice(resolved); ok {
			values = items
		} else if entries, ok := asEntries(resolved); ok {
			values = make([]interface{}, len(entries))
			for i, e := range entries {
				values[i] = e.(MapEntry).Key
			}
		} else {
			values = []interface{}{resolved}
		}
	}

	return contains(values, t.value) == s.retain, nil
}

// pathFilterStep forwards traversers whose path is (or is not) simple.
type pathFilterStep struct {
	*FilterStep
}

func newPathFilterStep(simple bool) *pathFilterStep {
	name := "CyclicPathStep"
	if simple {
		name = "SimplePathStep"
	}

	return &pathFilterStep{FilterStep: newFilterStep(name, func(t *Traverser) (bool, error) {
		if t.path == nil {
			return false, fmt.Errorf("path is not tracked: %w", ErrInvalidArgument)
		}

		return t.path.IsSimple() == simple, nil
	})}
}

func (s *pathFilterStep) requiresPath() bool { return true }

// coinStep keeps each unit of bulk with a fixed probability.
type coinStep struct {
	*baseStep
	probability float64
}

func newCoinStep(probability float64) *coinStep {
	s := &coinStep{baseStep: newBaseStep(fmt.Sprintf("CoinStep(%v)", probability)), probability: probability}
	s.processNext = s.processNextStart

	return s
}

func (s *coinStep) processNextStart() (*Traverser, error) {
	rnd := s.traversal.root().rnd

	for {
		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		var kept int64
		for i := int64(0); i < t.bulk; i++ {
			if rnd.Float64() < s.probability {
				kept++
			}
		}

		if kept == 0 {
			continue
		}

		out := s.pass(t)
		if kept != t.bulk {
			out = out.clone()
			out.bulk = kept
		}

		return out, nil
	}
}

// timeLimitStep fails the traversal once it has been pulling for longer
// than the limit, measured from its first pull.
type timeLimitStep struct {
	*baseStep
	limit   time.Duration
	started time.Time
}

func newTimeLimitStep(limit time.Duration) *timeLimitStep {
	s := &timeLimitStep{baseStep: newBaseStep("TimeLimitStep(" + limit.String() + ")"), limit: limit}
	s.processNext = s.processNextStart
	s.onReset = func() { s.started = time.Time{} }

	return s
}

func (s *timeLimitStep) processNextStart() (*Traverser, error) {
	root := s.traversal.root()
	now := root.clock.Now()

	if s.started.IsZero() {
		s.started = now
	}

	if elapsed := now.Sub(s.started); elapsed > s.limit {
		root.logger.WithField("elapsed", elapsed).Warn("traversal time limit exceeded")

		return nil, fmt.Errorf("%s: elapsed %s: %w", s.name, elapsed, ErrTimeLimitExceeded)
	}

	t, err := s.pull()
	if err != nil || t == nil {
		return nil, err
	}

	return s.pass(t), nil
}
