package traversal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mycok/uGraph/graph"
)

// branchCopy returns the traverser handed to a nested traversal, with its
// sack split for the branch.
func branchCopy(t *Traverser, mem *Memory) *Traverser {
	c := t.clone()
	c.sack = mem.splitSack(t.sack)

	return c
}

// branchRunner pulls the results of a list of nested traversals for one
// input traverser, one traversal after the other.
type branchRunner struct {
	subs   []*Traversal
	input  *Traverser
	mem    *Memory
	idx    int
	active bool
}

func (r *branchRunner) start(t *Traverser, subs []*Traversal, mem *Memory) {
	r.subs, r.input, r.mem, r.idx, r.active = subs, t, mem, 0, false
}

func (r *branchRunner) clear() {
	r.subs, r.input, r.idx, r.active = nil, nil, 0, false
}

// next returns the next result, or nil once every traversal is exhausted.
func (r *branchRunner) next() (*Traverser, error) {
	for r.idx < len(r.subs) {
		sub := r.subs[r.idx]
		if !r.active {
			sub.feed(branchCopy(r.input, r.mem))
			r.active = true
		}

		has, err := sub.end().HasNext()
		if err != nil {
			return nil, err
		}

		if has {
			return sub.end().Next()
		}

		r.idx++
		r.active = false
	}

	return nil, nil
}

// BranchStep routes each traverser into the nested traversals registered
// for the key its branch function returns. Traversers whose key has no
// option are dropped.
type BranchStep struct {
	*baseStep
	fn          func(*Traverser) (interface{}, error)
	fnTraversal *Traversal
	options     map[interface{}][]*Traversal
	optionKeys  []interface{}

	runner branchRunner
}

func newBranchStep(fn func(*Traverser) (interface{}, error)) *BranchStep {
	s := &BranchStep{
		baseStep: newBaseStep("BranchStep"),
		fn:       fn,
		options:  make(map[interface{}][]*Traversal),
	}
	s.processNext = s.processNextStart
	s.onReset = s.runner.clear

	return s
}

// newTraversalBranchStep branches on the first value produced by a nested
// traversal. A traversal producing nothing selects the nil key.
func newTraversalBranchStep(branch *Traversal) *BranchStep {
	s := newBranchStep(nil)
	s.fnTraversal = branch
	s.fn = func(t *Traverser) (interface{}, error) {
		results, err := drain(branch, t)
		if err != nil || len(results) == 0 {
			return nil, err
		}

		return results[0].value, nil
	}

	return s
}

// newChooseStep routes traversers for which cond yields a result into
// ifTrue and the others into ifFalse.
func newChooseStep(cond, ifTrue, ifFalse *Traversal) *BranchStep {
	s := newBranchStep(nil)
	s.name = "ChooseStep"
	s.fnTraversal = cond
	s.fn = func(t *Traverser) (interface{}, error) { return yields(cond, t) }
	s.AddOption(true, ifTrue)
	s.AddOption(false, ifFalse)

	return s
}

// AddOption registers a nested traversal for a branch key.
func (s *BranchStep) AddOption(key interface{}, option *Traversal) {
	k := graph.ValueKey(key)
	if _, exists := s.options[k]; !exists {
		s.optionKeys = append(s.optionKeys, key)
	}

	s.options[k] = append(s.options[k], option)

	if s.traversal != nil {
		option.parent = s.traversal
	}
}

func (s *BranchStep) children() []*Traversal {
	var subs []*Traversal
	if s.fnTraversal != nil {
		subs = append(subs, s.fnTraversal)
	}

	keys := make([]string, 0, len(s.options))
	byName := make(map[string]interface{}, len(s.options))
	for k := range s.options {
		name := fmt.Sprint(k)
		keys = append(keys, name)
		byName[name] = k
	}

	sort.Strings(keys)

	for _, name := range keys {
		subs = append(subs, s.options[byName[name]]...)
	}

	return subs
}

func (s *BranchStep) String() string {
	parts := make([]string, len(s.optionKeys))
	for i, k := range s.optionKeys {
		parts[i] = fmt.Sprintf("%v=%s", k, s.options[graph.ValueKey(k)])
	}

	return s.name + "(" + strings.Join(parts, ",") + ")"
}

func (s *BranchStep) processNextStart() (*Traverser, error) {
	for {
		tr, err := s.runner.next()
		if err != nil {
			return nil, err
		}

		if tr != nil {
			return s.pass(tr), nil
		}

		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		key, err := s.fn(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}

		s.runner.start(t, s.options[graph.ValueKey(key)], s.memory())
	}
}

// unionStep emits the results of every nested traversal for each input.
type unionStep struct {
	*baseStep
	subs   []*Traversal
	runner branchRunner
}

func newUnionStep(subs ...*Traversal) *unionStep {
	s := &unionStep{baseStep: newBaseStep("UnionStep(" + traversalsString(subs) + ")"), subs: subs}
	s.processNext = s.processNextStart
	s.onReset = s.runner.clear

	return s
}

func (s *unionStep) children() []*Traversal { return s.subs }

func (s *unionStep) processNextStart() (*Traverser, error) {
	for {
		tr, err := s.runner.next()
		if err != nil {
			return nil, err
		}

		if tr != nil {
			return s.pass(tr), nil
		}

		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		s.runner.start(t, s.subs, s.memory())
	}
}

// coalesceStep emits the results of the first nested traversal that
// yields anything for the input.
type coalesceStep struct {
	*baseStep
	subs   []*Traversal
	runner branchRunner
}

func newCoalesceStep(subs ...*Traversal) *coalesceStep {
	s := &coalesceStep{baseStep: newBaseStep("CoalesceStep(" + traversalsString(subs) + ")"), subs: subs}
	s.processNext = s.processNextStart
	s.onReset = s.runner.clear

	return s
}

func (s *coalesceStep) children() []*Traversal { return s.subs }

func (s *coalesceStep) processNextStart() (*Traverser, error) {
	for {
		tr, err := s.runner.next()
		if err != nil {
			return nil, err
		}

		if tr != nil {
			return s.pass(tr), nil
		}

		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		for _, sub := range s.subs {
			ok, err := yields(sub, branchCopy(t, s.memory()))
			if err != nil {
				return nil, err
			}

			if ok {
				s.runner.start(t, []*Traversal{sub}, s.memory())

				break
			}
		}
	}
}

func traversalsString(subs []*Traversal) string {
	parts := make([]string, len(subs))
	for i, sub := range subs {
		parts[i] = sub.String()
	}

	return strings.Join(parts, ",")
}

// RepeatStep loops traversers through a body traversal. Until and emit
// conditions declared before the repeat are tested before each pass
// through the body; those declared after are tested on the body's output.
// Times bounds the number of passes and takes precedence over until.
type RepeatStep struct {
	*baseStep
	body *Traversal

	untilTraversal *Traversal
	untilFn        func(*Traverser) bool
	untilFirst     bool

	emitSet       bool
	emitTraversal *Traversal
	emitFn        func(*Traverser) bool
	emitFirst     bool

	times int

	out  []*Traverser
	work []*Traverser
}

func newRepeatStep() *RepeatStep {
	s := &RepeatStep{baseStep: newBaseStep("RepeatStep"), times: -1}
	s.processNext = s.processNextStart
	s.onReset = func() { s.out, s.work = nil, nil }

	return s
}

// Body returns the loop body.
func (s *RepeatStep) Body() *Traversal { return s.body }

// Times returns the loop bound, negative when unbounded.
func (s *RepeatStep) Times() int { return s.times }

func (s *RepeatStep) children() []*Traversal {
	var subs []*Traversal
	for _, sub := range []*Traversal{s.body, s.untilTraversal, s.emitTraversal} {
		if sub != nil {
			subs = append(subs, sub)
		}
	}

	return subs
}

func (s *RepeatStep) String() string {
	var sb strings.Builder
	sb.WriteString("RepeatStep(")

	if s.body != nil {
		sb.WriteString(s.body.String())
	}

	if s.times >= 0 {
		fmt.Fprintf(&sb, ",times(%d)", s.times)
	}

	if s.untilTraversal != nil || s.untilFn != nil {
		fmt.Fprintf(&sb, ",until(first=%t)", s.untilFirst)
	}

	if s.emitSet {
		fmt.Fprintf(&sb, ",emit(first=%t)", s.emitFirst)
	}

	sb.WriteString(")")

	return sb.String()
}

func (s *RepeatStep) hasUntil() bool {
	return s.untilTraversal != nil || s.untilFn != nil
}

func (s *RepeatStep) untilHolds(t *Traverser) (bool, error) {
	if s.untilTraversal != nil {
		return yields(s.untilTraversal, t)
	}

	return s.untilFn(t), nil
}

func (s *RepeatStep) emitHolds(t *Traverser) (bool, error) {
	switch {
	case !s.emitSet:
		return false, nil
	case s.emitTraversal != nil:
		return yields(s.emitTraversal, t)
	case s.emitFn != nil:
		return s.emitFn(t), nil
	default:
		return true, nil
	}
}

// leave returns a copy of t as it exits the loop or is emitted from it.
func (s *RepeatStep) leave(t *Traverser) *Traverser {
	c := s.pass(t).clone()
	c.loops = 0

	return c
}

func (s *RepeatStep) processNextStart() (*Traverser, error) {
	if s.body == nil {
		return nil, fmt.Errorf("%s: repeat has no body: %w", s.name, ErrInvalidArgument)
	}

	for {
		if len(s.out) > 0 {
			t := s.out[0]
			s.out = s.out[1:]

			return t, nil
		}

		var t *Traverser
		if len(s.work) > 0 {
			t = s.work[0]
			s.work = s.work[1:]
		} else {
			in, err := s.pull()
			if err != nil || in == nil {
				return nil, err
			}

			t = in.clone()
			t.loops = 0
		}

		exit, err := s.exitsBefore(t)
		if err != nil {
			return nil, err
		}

		if exit {
			s.out = append(s.out, s.leave(t))

			continue
		}

		if s.emitFirst {
			emit, err := s.emitHolds(t)
			if err != nil {
				return nil, err
			}

			if emit {
				s.out = append(s.out, s.leave(t))
			}
		}

		if err := s.loop(t); err != nil {
			return nil, err
		}
	}
}

// exitsBefore applies the checks made before a pass through the body.
func (s *RepeatStep) exitsBefore(t *Traverser) (bool, error) {
	if s.times >= 0 {
		return t.loops >= s.times, nil
	}

	if s.untilFirst && s.hasUntil() {
		return s.untilHolds(t)
	}

	return false, nil
}

// loop runs t through the body once and routes every result.
func (s *RepeatStep) loop(t *Traverser) error {
	results, err := drain(s.body, t)
	if err != nil {
		return err
	}

	for _, r := range results {
		r = r.clone()
		r.loops = t.loops + 1

		exit := false
		switch {
		case s.times >= 0:
			exit = r.loops >= s.times
		case !s.untilFirst && s.hasUntil():
			if exit, err = s.untilHolds(r); err != nil {
				return err
			}
		}

		if exit {
			s.out = append(s.out, s.leave(r))

			continue
		}

		if !s.emitFirst {
			emit, err := s.emitHolds(r)
			if err != nil {
				return err
			}

			if emit {
				s.out = append(s.out, s.leave(r))
			}
		}

		s.work = append(s.work, r)
	}

	return nil
}
