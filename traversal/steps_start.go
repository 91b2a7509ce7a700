package traversal

import (
	"fmt"
	"strings"

	"github.com/mycok/uGraph/graph"
)

// GraphStep starts a traversal from the vertices or edges of the graph,
// either every element of the kind in ascending id order or the elements
// with the given ids in the given order. Unknown ids produce nothing.
type GraphStep struct {
	*baseStep
	kind graph.Kind
	ids  []string

	it      graph.ElementIterator
	idx     int
	started bool
}

func newGraphStep(kind graph.Kind, ids ...string) *GraphStep {
	s := &GraphStep{
		baseStep: newBaseStep("GraphStep(" + kind.String() + ")"),
		kind:     kind,
		ids:      ids,
	}
	s.processNext = s.processNextStart
	s.onReset = s.reset

	return s
}

// Kind returns the element kind the step enumerates.
func (s *GraphStep) Kind() graph.Kind { return s.kind }

// IDs returns the requested ids, empty for a full scan.
func (s *GraphStep) IDs() []string { return append([]string(nil), s.ids...) }

func (s *GraphStep) reset() {
	if s.it != nil {
		_ = s.it.Close()
	}

	s.it, s.idx, s.started = nil, 0, false
}

func (s *GraphStep) processNextStart() (*Traverser, error) {
	g := s.traversal.Graph()
	if g == nil {
		return nil, fmt.Errorf("%s: traversal has no graph: %w", s.name, ErrInvalidArgument)
	}

	if len(s.ids) > 0 {
		for s.idx < len(s.ids) {
			id := s.ids[s.idx]
			s.idx++

			el, err := g.Element(s.kind, id)
			if err != nil {
				continue
			}

			return s.generate(el, 1), nil
		}

		return nil, nil
	}

	if !s.started {
		it, err := g.Elements(s.kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}

		s.it, s.started = it, true
	}

	if s.it == nil {
		return nil, nil
	}

	for s.it.Next() {
		if el := s.it.Element(); isLive(g, s.kind, el) {
			return s.generate(el, 1), nil
		}
	}

	err := s.it.Error()
	_ = s.it.Close()
	s.it = nil

	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	return nil, nil
}

// isLive reports whether an element of a start snapshot was not removed
// since the snapshot was taken.
func isLive(g graph.Graph, kind graph.Kind, el graph.Element) bool {
	cur, err := g.Element(kind, el.ID())

	return err == nil && cur == el
}

// IndexedGraphStep starts a traversal from the elements whose indexed key
// equals a value, then applies the remaining has conditions that were
// folded into it.
type IndexedGraphStep struct {
	*baseStep
	kind       graph.Kind
	key        string
	value      interface{}
	containers []HasContainer

	elements []graph.Element
	idx      int
	loaded   bool
}

func newIndexedGraphStep(kind graph.Kind, key string, value interface{}, containers []HasContainer) *IndexedGraphStep {
	conds := make([]string, len(containers))
	for i, h := range containers {
		conds[i] = h.String()
	}

	s := &IndexedGraphStep{
		baseStep: newBaseStep(fmt.Sprintf(
			"IndexedGraphStep(%s,%s=%v,[%s])", kind, key, value, strings.Join(conds, ","),
		)),
		kind:       kind,
		key:        key,
		value:      value,
		containers: containers,
	}
	s.processNext = s.processNextStart
	s.onReset = func() { s.elements, s.idx, s.loaded = nil, 0, false }

	return s
}

// Key returns the indexed key the step looks up.
func (s *IndexedGraphStep) Key() string { return s.key }

// Value returns the looked-up value.
func (s *IndexedGraphStep) Value() interface{} { return s.value }

// Containers returns every has condition the step applies.
func (s *IndexedGraphStep) Containers() []HasContainer {
	return append([]HasContainer(nil), s.containers...)
}

func (s *IndexedGraphStep) processNextStart() (*Traverser, error) {
	if !s.loaded {
		g := s.traversal.Graph()
		if g == nil {
			return nil, fmt.Errorf("%s: traversal has no graph: %w", s.name, ErrInvalidArgument)
		}

		elements, err := g.LookupElements(s.kind, s.key, s.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}

		s.elements, s.loaded = elements, true
	}

	// The lookup is a snapshot. Elements changed or removed since then are
	// re-tested against the live graph like a scan would.
	g := s.traversal.Graph()
	for s.idx < len(s.elements) {
		el := s.elements[s.idx]
		s.idx++

		if !isLive(g, s.kind, el) {
			continue
		}

		t := s.generate(el, 1)

		ok, err := s.test(t, func() (bool, error) { return testAll(s.containers, el) })
		if err != nil {
			return nil, err
		}

		if ok {
			return t, nil
		}
	}

	return nil, nil
}

// InjectStep emits a fixed list of values ahead of its upstream.
type InjectStep struct {
	*baseStep
	values []interface{}
	idx    int
}

func newInjectStep(values ...interface{}) *InjectStep {
	s := &InjectStep{
		baseStep: newBaseStep(fmt.Sprintf("InjectStep(%v)", values)),
		values:   values,
	}
	s.processNext = s.processNextStart
	s.onReset = func() { s.idx = 0 }

	return s
}

func (s *InjectStep) processNextStart() (*Traverser, error) {
	if s.idx < len(s.values) {
		val := s.values[s.idx]
		s.idx++

		return s.generate(val, 1), nil
	}

	t, err := s.pull()
	if err != nil || t == nil {
		return nil, err
	}

	return s.emit(t, t.value), nil
}
