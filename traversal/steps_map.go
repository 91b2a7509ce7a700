package traversal

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mycok/uGraph/graph"
)

// MapStep replaces each traverser's value with the result of a function.
type MapStep struct {
	*baseStep
	fn func(*Traverser) (interface{}, error)
}

func newMapStep(name string, fn func(*Traverser) (interface{}, error)) *MapStep {
	s := &MapStep{baseStep: newBaseStep(name), fn: fn}
	s.processNext = s.processNextStart

	return s
}

func (s *MapStep) processNextStart() (*Traverser, error) {
	t, err := s.pull()
	if err != nil || t == nil {
		return nil, err
	}

	val, err := s.fn(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	return s.emit(t, val), nil
}

// FlatMapStep replaces each traverser with one traverser per value
// returned by a function.
type FlatMapStep struct {
	*baseStep
	fn func(*Traverser) ([]interface{}, error)

	current *Traverser
	buffer  []interface{}
}

func newFlatMapStep(name string, fn func(*Traverser) ([]interface{}, error)) *FlatMapStep {
	s := &FlatMapStep{baseStep: newBaseStep(name), fn: fn}
	s.processNext = s.processNextStart
	s.onReset = func() { s.current, s.buffer = nil, nil }

	return s
}

func (s *FlatMapStep) processNextStart() (*Traverser, error) {
	for {
		if len(s.buffer) > 0 {
			val := s.buffer[0]
			s.buffer = s.buffer[1:]

			return s.emit(s.current, val), nil
		}

		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		vals, err := s.fn(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}

		s.current, s.buffer = t, vals
	}
}

func newIdentityStep() *MapStep {
	return newMapStep("IdentityStep", func(t *Traverser) (interface{}, error) { return t.value, nil })
}

// VertexStep moves from vertices to their adjacent vertices or incident
// edges.
type VertexStep struct {
	*FlatMapStep
	Direction  graph.Direction
	EdgeLabels []string
	ToEdges    bool
}

func newVertexStep(dir graph.Direction, toEdges bool, labels ...string) *VertexStep {
	kind := "vertex"
	if toEdges {
		kind = "edge"
	}

	s := &VertexStep{Direction: dir, EdgeLabels: labels, ToEdges: toEdges}
	s.FlatMapStep = newFlatMapStep(
		fmt.Sprintf("VertexStep(%s,[%s],%s)", dir, strings.Join(labels, ","), kind),
		s.adjacent,
	)

	return s
}

func (s *VertexStep) adjacent(t *Traverser) ([]interface{}, error) {
	v, ok := t.value.(graph.Vertex)
	if !ok {
		return nil, fmt.Errorf("expected a vertex, got %T: %w", t.value, ErrInvalidArgument)
	}

	if s.ToEdges {
		edges := v.Edges(s.Direction, s.EdgeLabels...)
		vals := make([]interface{}, len(edges))
		for i, e := range edges {
			vals[i] = e
		}

		return vals, nil
	}

	vertices := v.Vertices(s.Direction, s.EdgeLabels...)
	vals := make([]interface{}, len(vertices))
	for i, adj := range vertices {
		vals[i] = adj
	}

	return vals, nil
}

// otherVStep moves from an edge to the endpoint that the traverser did not
// arrive from, which it reads from the path.
type otherVStep struct {
	*FlatMapStep
}

func newOtherVStep() *otherVStep {
	s := &otherVStep{}
	s.FlatMapStep = newFlatMapStep("EdgeOtherVertexStep", s.other)

	return s
}

func (s *otherVStep) requiresPath() bool { return true }

func (s *otherVStep) other(t *Traverser) ([]interface{}, error) {
	e, ok := t.value.(graph.Edge)
	if !ok {
		return nil, fmt.Errorf("expected an edge, got %T: %w", t.value, ErrInvalidArgument)
	}

	if t.path != nil && t.path.Size() >= 2 {
		if prev, ok := t.path.objects[t.path.Size()-2].(graph.Vertex); ok && prev.ID() == e.InVertex().ID() {
			return []interface{}{e.OutVertex()}, nil
		}
	}

	return []interface{}{e.InVertex()}, nil
}

func newEdgeVertexStep(dir graph.Direction) *FlatMapStep {
	return newFlatMapStep(fmt.Sprintf("EdgeVertexStep(%s)", dir), func(t *Traverser) ([]interface{}, error) {
		e, ok := t.value.(graph.Edge)
		if !ok {
			return nil, fmt.Errorf("expected an edge, got %T: %w", t.value, ErrInvalidArgument)
		}

		vertices := e.Vertices(dir)
		vals := make([]interface{}, len(vertices))
		for i, v := range vertices {
			vals[i] = v
		}

		return vals, nil
	})
}

func newPropertiesStep(valuesOnly bool, keys ...string) *FlatMapStep {
	name := "PropertiesStep"
	if valuesOnly {
		name = "PropertyValuesStep"
	}

	return newFlatMapStep(
		fmt.Sprintf("%s([%s])", name, strings.Join(keys, ",")),
		func(t *Traverser) ([]interface{}, error) {
			if m, ok := t.value.(map[string]interface{}); ok && valuesOnly {
				return mapValues(m, keys), nil
			}

			el, ok := t.value.(graph.Element)
			if !ok {
				return nil, fmt.Errorf("expected an element, got %T: %w", t.value, ErrInvalidArgument)
			}

			props := el.Properties(keys...)
			vals := make([]interface{}, len(props))
			for i, p := range props {
				if valuesOnly {
					vals[i] = p.Value
				} else {
					vals[i] = p
				}
			}

			return vals, nil
		},
	)
}

func mapValues(m map[string]interface{}, keys []string) []interface{} {
	if len(keys) == 0 {
		keys = make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}

		sort.Strings(keys)
	}

	var vals []interface{}
	for _, key := range keys {
		if val, exists := m[key]; exists {
			vals = append(vals, val)
		}
	}

	return vals
}

func newIDStep() *MapStep {
	return newMapStep("IdStep", func(t *Traverser) (interface{}, error) {
		el, ok := t.value.(graph.Element)
		if !ok {
			return nil, fmt.Errorf("expected an element, got %T: %w", t.value, ErrInvalidArgument)
		}

		return el.ID(), nil
	})
}

func newLabelStep() *MapStep {
	return newMapStep("LabelStep", func(t *Traverser) (interface{}, error) {
		el, ok := t.value.(graph.Element)
		if !ok {
			return nil, fmt.Errorf("expected an element, got %T: %w", t.value, ErrInvalidArgument)
		}

		return el.Label(), nil
	})
}

// pathStep emits the path of each traverser.
type pathStep struct {
	*MapStep
}

func newPathStep() *pathStep {
	return &pathStep{MapStep: newMapStep("PathStep", func(t *Traverser) (interface{}, error) {
		return t.path, nil
	})}
}

func (s *pathStep) requiresPath() bool { return true }

// selectStep emits the values tagged with one or more labels.
type selectStep struct {
	*MapStep
	selectLabels []string
}

func newSelectStep(labels ...string) *selectStep {
	s := &selectStep{selectLabels: labels}
	s.MapStep = newMapStep(fmt.Sprintf("SelectStep([%s])", strings.Join(labels, ",")), s.selectValues)

	return s
}

func (s *selectStep) requiresPath() bool { return true }

func (s *selectStep) selectValues(t *Traverser) (interface{}, error) {
	if len(s.selectLabels) == 1 {
		return s.resolve(t, s.selectLabels[0])
	}

	selected := make(map[string]interface{}, len(s.selectLabels))
	for _, label := range s.selectLabels {
		val, err := s.resolve(t, label)
		if err != nil {
			return nil, err
		}

		selected[label] = val
	}

	return selected, nil
}

// backStep returns to the value of an earlier labeled step.
type backStep struct {
	*MapStep
	label string
}

func newBackStep(label string) *backStep {
	s := &backStep{label: label}
	s.MapStep = newMapStep("BackStep("+label+")", func(t *Traverser) (interface{}, error) {
		return s.resolve(t, s.label)
	})

	return s
}

func (s *backStep) requiresPath() bool { return true }

func newSackStep() *MapStep {
	return newMapStep("SackStep", func(t *Traverser) (interface{}, error) { return t.sack, nil })
}

// MapEntry is a key/value pair produced when unfolding a map.
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

func newUnfoldStep() *FlatMapStep {
	return newFlatMapStep("UnfoldStep", func(t *Traverser) ([]interface{}, error) {
		if entries, ok := asEntries(t.value); ok {
			return entries, nil
		}

		if items, ok := asSlice(t.value); ok {
			return items, nil
		}

		return []interface{}{t.value}, nil
	})
}

// asSlice returns the items of a slice or array value.
func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case *Path:
		return s.Objects(), true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, true
}

// asEntries returns the entries of a map value ordered by formatted key.
func asEntries(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	entries := make([]interface{}, len(keys))
	for i, k := range keys {
		entries[i] = MapEntry{Key: k.Interface(), Value: rv.MapIndex(k).Interface()}
	}

	return entries, true
}

// localStep runs a nested traversal for each traverser and emits its
// results.
type localStep struct {
	*baseStep
	local  *Traversal
	active bool
}

func newLocalStep(local *Traversal) *localStep {
	s := &localStep{baseStep: newBaseStep("LocalStep(" + local.String() + ")"), local: local}
	s.processNext = s.processNextStart
	s.onReset = func() { s.active = false }

	return s
}

func (s *localStep) children() []*Traversal { return []*Traversal{s.local} }

func (s *localStep) processNextStart() (*Traverser, error) {
	for {
		if s.active {
			has, err := s.local.end().HasNext()
			if err != nil {
				return nil, err
			}

			if has {
				tr, err := s.local.end().Next()
				if err != nil {
					return nil, err
				}

				return s.pass(tr), nil
			}

			s.active = false
		}

		t, err := s.pull()
		if err != nil || t == nil {
			return nil, err
		}

		s.local.feed(t)
		s.active = true
	}
}
