package traversal

import (
	"fmt"
	"strings"

	"github.com/mycok/uGraph/graph"
)

// memoryRegistrar is implemented by steps that declare side-effect keys.
// Keys are declared when the traversal is prepared so that cap can read
// them even when no traverser reached the step.
type memoryRegistrar interface {
	registerMemory(m *Memory)
}

// SideEffectStep calls a function for each traverser and forwards it
// unchanged.
type SideEffectStep struct {
	*baseStep
	fn func(*Traverser) error
}

func newSideEffectStep(name string, fn func(*Traverser) error) *SideEffectStep {
	s := &SideEffectStep{baseStep: newBaseStep(name), fn: fn}
	s.processNext = s.processNextStart

	return s
}

func (s *SideEffectStep) processNextStart() (*Traverser, error) {
	t, err := s.pull()
	if err != nil || t == nil {
		return nil, err
	}

	if err := s.fn(t); err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	return s.pass(t), nil
}

// storeStep appends each value to a list side effect as it passes.
type storeStep struct {
	*SideEffectStep
	key string
}

func newStoreStep(key string) *storeStep {
	s := &storeStep{key: key}
	s.SideEffectStep = newSideEffectStep("StoreStep("+key+")", func(t *Traverser) error {
		for i := int64(0); i < t.bulk; i++ {
			s.memory().Add(s.key, t.value)
		}

		return nil
	})

	return s
}

func (s *storeStep) registerMemory(m *Memory) {
	m.Register(s.key, []interface{}{}, AppendMerge)
}

// aggregateStep drains its upstream into a list side effect before it
// forwards the first traverser.
type aggregateStep struct {
	*baseStep
	key     string
	buffer  []*Traverser
	drained bool
}

func newAggregateStep(key string) *aggregateStep {
	s := &aggregateStep{baseStep: newBaseStep("AggregateStep(" + key + ")"), key: key}
	s.processNext = s.processNextStart
	s.onReset = func() { s.buffer, s.drained = nil, false }

	return s
}

func (s *aggregateStep) registerMemory(m *Memory) {
	m.Register(s.key, []interface{}{}, AppendMerge)
}

func (s *aggregateStep) processNextStart() (*Traverser, error) {
	if !s.drained {
		for {
			t, err := s.pull()
			if err != nil {
				return nil, err
			}

			if t == nil {
				break
			}

			for i := int64(0); i < t.bulk; i++ {
				s.memory().Add(s.key, t.value)
			}

			s.buffer = append(s.buffer, t)
		}

		s.drained = true
	}

	if len(s.buffer) == 0 {
		return nil, nil
	}

	t := s.buffer[0]
	s.buffer = s.buffer[1:]

	return s.pass(t), nil
}

// groupCountStep counts traversers per key into a side-effect map.
type groupCountStep struct {
	*SideEffectStep
	key   string
	keyFn func(*Traverser) (interface{}, error)
}

func newGroupCountStep(key string, keyFn func(*Traverser) (interface{}, error)) *groupCountStep {
	s := &groupCountStep{key: key, keyFn: keyFn}
	s.SideEffectStep = newSideEffectStep("GroupCountStep("+key+")", func(t *Traverser) error {
		counts, err := s.memory().Get(s.key)
		if err != nil {
			return err
		}

		return addGroupCount(counts.(map[interface{}]int64), t, s.keyFn)
	})

	return s
}

func (s *groupCountStep) registerMemory(m *Memory) {
	m.Register(s.key, make(map[interface{}]int64), nil)
}

func addGroupCount(counts map[interface{}]int64, t *Traverser, keyFn func(*Traverser) (interface{}, error)) error {
	k, err := groupKey(t, keyFn)
	if err != nil {
		return err
	}

	counts[k] += t.bulk

	return nil
}

func groupKey(t *Traverser, keyFn func(*Traverser) (interface{}, error)) (interface{}, error) {
	k := t.value
	if keyFn != nil {
		var err error
		if k, err = keyFn(t); err != nil {
			return nil, err
		}
	}

	return graph.ValueKey(k), nil
}

// Grouping holds the functions used by group: the grouping key, the value
// collected for each traverser and an optional reduction of each group.
// Nil functions default to the traverser value and no reduction.
type Grouping struct {
	Key    func(*Traverser) (interface{}, error)
	Value  func(*Traverser) (interface{}, error)
	Reduce func([]interface{}) interface{}
}

type groupState struct {
	grouping Grouping
	lists    map[interface{}][]interface{}
}

func newGroupState(grouping Grouping) *groupState {
	return &groupState{grouping: grouping, lists: make(map[interface{}][]interface{})}
}

// add records t and returns the group key it went to.
func (g *groupState) add(t *Traverser) (interface{}, error) {
	k, err := groupKey(t, g.grouping.Key)
	if err != nil {
		return nil, err
	}

	v := t.value
	if g.grouping.Value != nil {
		if v, err = g.grouping.Value(t); err != nil {
			return nil, err
		}
	}

	for i := int64(0); i < t.bulk; i++ {
		g.lists[k] = append(g.lists[k], v)
	}

	return k, nil
}

func (g *groupState) group(k interface{}) interface{} {
	if g.grouping.Reduce != nil {
		return g.grouping.Reduce(g.lists[k])
	}

	return g.lists[k]
}

func (g *groupState) result() map[interface{}]interface{} {
	out := make(map[interface{}]interface{}, len(g.lists))
	for k := range g.lists {
		out[k] = g.group(k)
	}

	return out
}

// groupStep groups traversers into a side-effect map kept current after
// every traverser.
type groupStep struct {
	*SideEffectStep
	key   string
	state *groupState
}

func newGroupStep(key string, grouping Grouping) *groupStep {
	s := &groupStep{key: key, state: newGroupState(grouping)}
	s.SideEffectStep = newSideEffectStep("GroupStep("+key+")", func(t *Traverser) error {
		k, err := s.state.add(t)
		if err != nil {
			return err
		}

		groups, err := s.memory().Get(s.key)
		if err != nil {
			return err
		}

		groups.(map[interface{}]interface{})[k] = s.state.group(k)

		return nil
	})

	return s
}

func (s *groupStep) registerMemory(m *Memory) {
	m.Register(s.key, make(map[interface{}]interface{}), nil)
}

// Tree is a prefix tree of traverser paths.
type Tree map[interface{}]Tree

func (tr Tree) addPath(objects []interface{}) {
	node := tr
	for _, obj := range objects {
		k := graph.ValueKey(obj)

		child, exists := node[k]
		if !exists {
			child = make(Tree)
			node[k] = child
		}

		node = child
	}
}

// treeStep adds every traverser path to a side-effect tree.
type treeStep struct {
	*SideEffectStep
	key string
}

func newTreeStep(key string) *treeStep {
	s := &treeStep{key: key}
	s.SideEffectStep = newSideEffectStep("TreeStep("+key+")", func(t *Traverser) error {
		if t.path == nil {
			return fmt.Errorf("path is not tracked: %w", ErrInvalidArgument)
		}

		tree, err := s.memory().Get(s.key)
		if err != nil {
			return err
		}

		tree.(Tree).addPath(t.path.objects)

		return nil
	})

	return s
}

func (s *treeStep) requiresPath() bool { return true }

func (s *treeStep) registerMemory(m *Memory) {
	m.Register(s.key, make(Tree), nil)
}

// sackUpdateStep folds a value into each traverser's sack with a binary
// operator. With a property key the operand is that property of the
// current element; elements without the property keep their sack.
type sackUpdateStep struct {
	*baseStep
	fn          func(sack, value interface{}) interface{}
	propertyKey string
}

func newSackUpdateStep(fn func(sack, value interface{}) interface{}, propertyKey string) *sackUpdateStep {
	s := &sackUpdateStep{
		baseStep:    newBaseStep("SackValueStep(" + propertyKey + ")"),
		fn:          fn,
		propertyKey: propertyKey,
	}
	s.processNext = s.processNextStart

	return s
}

func (s *sackUpdateStep) processNextStart() (*Traverser, error) {
	t, err := s.pull()
	if err != nil || t == nil {
		return nil, err
	}

	val := t.value
	if s.propertyKey != "" {
		el, ok := t.value.(graph.Element)
		if !ok {
			return nil, fmt.Errorf("%s: expected an element, got %T: %w", s.name, t.value, ErrInvalidArgument)
		}

		prop, exists := el.Property(s.propertyKey)
		if !exists {
			return s.pass(t), nil
		}

		val = prop
	}

	c := s.pass(t).clone()
	c.sack = s.fn(c.sack, val)

	return c, nil
}

// addEdgeStep connects the current vertex with the vertex tagged by a
// step label and forwards the current vertex.
type addEdgeStep struct {
	*SideEffectStep
	direction graph.Direction
	edgeLabel string
	stepLabel string
	props     graph.Properties
}

func newAddEdgeStep(dir graph.Direction, edgeLabel, stepLabel string, props graph.Properties) *addEdgeStep {
	s := &addEdgeStep{direction: dir, edgeLabel: edgeLabel, stepLabel: stepLabel, props: props}
	s.SideEffectStep = newSideEffectStep(
		fmt.Sprintf("AddEdgeStep(%s,%s,%s)", dir, edgeLabel, stepLabel), s.addEdges,
	)

	return s
}

func (s *addEdgeStep) requiresPath() bool { return true }

func (s *addEdgeStep) addEdges(t *Traverser) error {
	current, ok := t.value.(graph.Vertex)
	if !ok {
		return fmt.Errorf("expected a vertex, got %T: %w", t.value, ErrInvalidArgument)
	}

	val, err := s.resolve(t, s.stepLabel)
	if err != nil {
		return err
	}

	other, ok := val.(graph.Vertex)
	if !ok {
		return fmt.Errorf("label %q holds %T, not a vertex: %w", s.stepLabel, val, ErrInvalidArgument)
	}

	for i := int64(0); i < t.bulk; i++ {
		if s.direction == graph.Out || s.direction == graph.Both {
			if _, err := current.AddEdge(s.edgeLabel, other, s.props); err != nil {
				return err
			}
		}

		if s.direction == graph.In || s.direction == graph.Both {
			if _, err := other.AddEdge(s.edgeLabel, current, s.props); err != nil {
				return err
			}
		}
	}

	return nil
}

// capStep drains its upstream and emits the value of one or more side
// effects.
type capStep struct {
	*baseStep
	keys []string
	done bool
}

func newCapStep(keys ...string) *capStep {
	s := &capStep{baseStep: newBaseStep("SideEffectCapStep([" + strings.Join(keys, ",") + "])"), keys: keys}
	s.processNext = s.processNextStart
	s.onReset = func() { s.done = false }

	return s
}

func (s *capStep) processNextStart() (*Traverser, error) {
	if s.done {
		return nil, nil
	}

	for {
		t, err := s.pull()
		if err != nil {
			return nil, err
		}

		if t == nil {
			break
		}
	}

	s.done = true

	if len(s.keys) == 1 {
		val, err := s.memory().Get(s.keys[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}

		return s.generate(val, 1), nil
	}

	values := make(map[string]interface{}, len(s.keys))
	for _, key := range s.keys {
		val, err := s.memory().Get(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}

		values[key] = val
	}

	return s.generate(values, 1), nil
}
