package memory

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/mycok/uGraph/graph"
)

// Static and compile-time check to ensure InMemoryGraph implements
// Graph interface.
var _ graph.Graph = (*InMemoryGraph)(nil)

// InMemoryGraph implements an in-memory property graph that can be
// concurrently accessed by multiple clients. A single RWMutex guards the
// element maps, every element record and both key indexes, so readers
// never observe a property value that disagrees with its index entry.
type InMemoryGraph struct {
	mu          sync.RWMutex
	currentID   int64
	vertices    map[string]*vertex
	edges       map[string]*edge
	vertexIndex *keyIndex
	edgeIndex   *keyIndex
	annotations *annotations
}

// NewInMemoryGraph creates a new, empty in-memory graph.
func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		vertices:    make(map[string]*vertex),
		edges:       make(map[string]*edge),
		vertexIndex: newKeyIndex(),
		edgeIndex:   newKeyIndex(),
		annotations: newAnnotations(),
	}
}

// Clear removes every element, index and annotation and resets the id
// counter.
func (s *InMemoryGraph) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.vertices {
		v.removed = true
	}

	for _, e := range s.edges {
		e.removed = true
	}

	s.currentID = 0
	s.vertices = make(map[string]*vertex)
	s.edges = make(map[string]*edge)
	s.vertexIndex = newKeyIndex()
	s.edgeIndex = newKeyIndex()
	s.annotations = newAnnotations()
}

// Counts returns the number of vertices and edges in the graph.
func (s *InMemoryGraph) Counts() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.vertices), len(s.edges)
}

// String returns a short description of the graph.
func (s *InMemoryGraph) String() string {
	numV, numE := s.Counts()

	return fmt.Sprintf("inmemorygraph[vertices:%d edges:%d]", numV, numE)
}

// Annotations returns the graph-level metadata.
func (s *InMemoryGraph) Annotations() graph.Annotations {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.annotations
}

// AddVertex creates a new vertex. An empty id asks the graph to assign the
// next free value of its id counter.
func (s *InMemoryGraph) AddVertex(id, label string, props graph.Properties) (graph.Vertex, error) {
	if err := validateProperties(props); err != nil {
		return nil, fmt.Errorf("add vertex: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = s.nextID(graph.VertexKind)
	} else if _, exists := s.vertices[id]; exists {
		return nil, fmt.Errorf("add vertex %q: %w", id, graph.ErrDuplicateIdentifier)
	}

	if label == "" {
		label = graph.DefaultVertexLabel
	}

	v := newVertex(s, id, label)
	s.vertices[id] = v
	s.attachProperties(&v.element, props)

	return v, nil
}

// AddEdge creates a new edge from the vertex outID to the vertex inID.
func (s *InMemoryGraph) AddEdge(id, label, outID, inID string, props graph.Properties) (graph.Edge, error) {
	if err := validateProperties(props); err != nil {
		return nil, fmt.Errorf("add edge: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out, isOutExists := s.vertices[outID]
	in, isInExists := s.vertices[inID]
	if !isOutExists || !isInExists {
		return nil, fmt.Errorf("add edge from %q to %q: %w", outID, inID, graph.ErrUnknownEdgeVertices)
	}

	return s.addEdgeLocked(id, label, out, in, props)
}

// addEdgeLocked inserts an edge between two live vertex records. Callers
// must hold the write lock.
func (s *InMemoryGraph) addEdgeLocked(
	id, label string, out, in *vertex, props graph.Properties,
) (*edge, error) {

	if out.removed || in.removed {
		return nil, fmt.Errorf("add edge from %q to %q: %w", out.id, in.id, graph.ErrUnknownEdgeVertices)
	}

	if id == "" {
		id = s.nextID(graph.EdgeKind)
	} else if _, exists := s.edges[id]; exists {
		return nil, fmt.Errorf("add edge %q: %w", id, graph.ErrDuplicateIdentifier)
	}

	if label == "" {
		label = graph.DefaultEdgeLabel
	}

	e := newEdge(s, id, label, out, in)
	s.edges[id] = e
	out.link(graph.Out, e)
	in.link(graph.In, e)
	s.attachProperties(&e.element, props)

	return e, nil
}

// nextID advances the id counter until it yields an id that is not
// already used by an element of the given kind. Callers must hold the
// write lock.
func (s *InMemoryGraph) nextID(kind graph.Kind) string {
	for {
		s.currentID++
		id := strconv.FormatInt(s.currentID, 10)

		var exists bool
		if kind == graph.VertexKind {
			_, exists = s.vertices[id]
		} else {
			_, exists = s.edges[id]
		}

		if !exists {
			return id
		}
	}
}

// Element returns the element of the given kind with the specified id.
func (s *InMemoryGraph) Element(kind graph.Kind, id string) (graph.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.elementLocked(kind, id)
}

func (s *InMemoryGraph) elementLocked(kind graph.Kind, id string) (graph.Element, error) {
	switch kind {
	case graph.VertexKind:
		if v, exists := s.vertices[id]; exists {
			return v, nil
		}
	case graph.EdgeKind:
		if e, exists := s.edges[id]; exists {
			return e, nil
		}
	default:
		return nil, fmt.Errorf("find element: %w", graph.ErrUnknownKind)
	}

	return nil, fmt.Errorf("find %s %q: %w", kind, id, graph.ErrNotFound)
}

// recordLocked returns the internal record for an element. Callers must
// hold at least the read lock.
func (s *InMemoryGraph) recordLocked(kind graph.Kind, id string) (*element, error) {
	switch kind {
	case graph.VertexKind:
		if v, exists := s.vertices[id]; exists {
			return &v.element, nil
		}
	case graph.EdgeKind:
		if e, exists := s.edges[id]; exists {
			return &e.element, nil
		}
	default:
		return nil, graph.ErrUnknownKind
	}

	return nil, fmt.Errorf("%s %q: %w", kind, id, graph.ErrNotFound)
}

// Vertex returns the vertex with the specified id.
func (s *InMemoryGraph) Vertex(id string) (graph.Vertex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.vertices[id]
	if !exists {
		return nil, fmt.Errorf("find vertex %q: %w", id, graph.ErrNotFound)
	}

	return v, nil
}

// Edge returns the edge with the specified id.
func (s *InMemoryGraph) Edge(id string) (graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.edges[id]
	if !exists {
		return nil, fmt.Errorf("find edge %q: %w", id, graph.ErrNotFound)
	}

	return e, nil
}

// RemoveElement deletes an element and updates every index synchronously.
// Removing a vertex cascades to all of its incident edges.
func (s *InMemoryGraph) RemoveElement(kind graph.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case graph.VertexKind:
		v, exists := s.vertices[id]
		if !exists {
			return fmt.Errorf("remove vertex %q: %w", id, graph.ErrNotFound)
		}
		s.removeVertexLocked(v)
	case graph.EdgeKind:
		e, exists := s.edges[id]
		if !exists {
			return fmt.Errorf("remove edge %q: %w", id, graph.ErrNotFound)
		}
		s.removeEdgeLocked(e)
	default:
		return fmt.Errorf("remove element: %w", graph.ErrUnknownKind)
	}

	return nil
}

func (s *InMemoryGraph) removeVertexLocked(v *vertex) {
	for _, e := range v.incident(graph.Both) {
		s.removeEdgeLocked(e)
	}

	s.vertexIndex.removeElement(v.id, v.props)
	delete(s.vertices, v.id)
	v.removed = true
}

func (s *InMemoryGraph) removeEdgeLocked(e *edge) {
	// A self-loop is listed under both directions of the same vertex and
	// reaches this point only once per cascade since the first call
	// unlinks it from both.
	if e.removed {
		return
	}

	e.out.unlink(graph.Out, e)
	e.in.unlink(graph.In, e)
	s.edgeIndex.removeElement(e.id, e.props)
	delete(s.edges, e.id)
	e.removed = true
}

// Property returns the value stored under key for an element.
func (s *InMemoryGraph) Property(kind graph.Kind, id, key string) (interface{}, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.recordLocked(kind, id)
	if err != nil {
		return nil, false, fmt.Errorf("get property: %w", err)
	}

	val, exists := rec.props[key]

	return val, exists, nil
}

// SetProperty sets a property and updates the key index for that key
// before returning. A nil value removes the property.
func (s *InMemoryGraph) SetProperty(kind graph.Kind, id, key string, value interface{}) error {
	if err := graph.ValidateKey(key); err != nil {
		return fmt.Errorf("set property: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordLocked(kind, id)
	if err != nil {
		return fmt.Errorf("set property: %w", err)
	}

	s.setPropertyLocked(rec, key, value)

	return nil
}

// RemoveProperty deletes a property if present and updates the key index.
func (s *InMemoryGraph) RemoveProperty(kind graph.Kind, id, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.recordLocked(kind, id)
	if err != nil {
		return fmt.Errorf("remove property: %w", err)
	}

	s.setPropertyLocked(rec, key, nil)

	return nil
}

// setPropertyLocked is the single mutation path for property values.
// Callers must hold the write lock.
func (s *InMemoryGraph) setPropertyLocked(rec *element, key string, value interface{}) {
	idx := s.indexFor(rec.kind)

	if old, exists := rec.props[key]; exists {
		idx.remove(key, old, rec.id)
		delete(rec.props, key)
	}

	if value == nil {
		return
	}

	rec.props[key] = value
	idx.add(key, value, rec.id)
}

func (s *InMemoryGraph) attachProperties(rec *element, props graph.Properties) {
	for key, value := range props {
		s.setPropertyLocked(rec, key, value)
	}
}

// Adjacency returns the edges incident to a vertex.
func (s *InMemoryGraph) Adjacency(vertexID string, dir graph.Direction, labels ...string) ([]graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.vertices[vertexID]
	if !exists {
		return nil, fmt.Errorf("adjacency of %q: %w", vertexID, graph.ErrNotFound)
	}

	return edgesAsInterface(v.incident(dir, labels...)), nil
}

// Elements returns an iterator over every element of a kind, in ascending
// id order. The element set is captured when the iterator is created.
func (s *InMemoryGraph) Elements(kind graph.Kind) (graph.ElementIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []graph.Element

	switch kind {
	case graph.VertexKind:
		list = make([]graph.Element, 0, len(s.vertices))
		for _, v := range s.vertices {
			list = append(list, v)
		}
	case graph.EdgeKind:
		list = make([]graph.Element, 0, len(s.edges))
		for _, e := range s.edges {
			list = append(list, e)
		}
	default:
		return nil, fmt.Errorf("elements: %w", graph.ErrUnknownKind)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })

	return &elementIterator{elements: list}, nil
}

func validateProperties(props graph.Properties) error {
	for key := range props {
		if err := graph.ValidateKey(key); err != nil {
			return err
		}
	}

	return nil
}
