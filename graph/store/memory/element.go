package memory

import (
	"fmt"
	"sort"

	"github.com/mycok/uGraph/graph"
)

// Static and compile-time checks to ensure the element records implement
// the graph element interfaces.
var (
	_ graph.Vertex = (*vertex)(nil)
	_ graph.Edge   = (*edge)(nil)
)

// element holds the state shared by vertex and edge records. Records are
// the handles returned to callers, so a given element is always
// represented by the same pointer. All fields are guarded by the owning
// graph's mutex.
type element struct {
	g       *InMemoryGraph
	self    graph.Element
	kind    graph.Kind
	id      string
	label   string
	props   map[string]interface{}
	removed bool
}

// ID returns the element identifier.
func (el *element) ID() string { return el.id }

// Label returns the element label.
func (el *element) Label() string { return el.label }

// Kind returns the element kind.
func (el *element) Kind() graph.Kind { return el.kind }

// Property returns the value stored under key.
func (el *element) Property(key string) (interface{}, bool) {
	el.g.mu.RLock()
	defer el.g.mu.RUnlock()

	val, exists := el.props[key]

	return val, exists
}

// Properties returns the properties with the given keys, or every
// property when no key is supplied, sorted by key.
func (el *element) Properties(keys ...string) []graph.Property {
	el.g.mu.RLock()
	defer el.g.mu.RUnlock()

	if len(keys) == 0 {
		keys = el.keysLocked()
	}

	props := make([]graph.Property, 0, len(keys))
	for _, key := range keys {
		if val, exists := el.props[key]; exists {
			props = append(props, graph.Property{Key: key, Value: val, Element: el.self})
		}
	}

	sort.SliceStable(props, func(i, j int) bool { return props[i].Key < props[j].Key })

	return props
}

// Keys returns the sorted property keys.
func (el *element) Keys() []string {
	el.g.mu.RLock()
	defer el.g.mu.RUnlock()

	return el.keysLocked()
}

func (el *element) keysLocked() []string {
	keys := make([]string, 0, len(el.props))
	for key := range el.props {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// SetProperty sets a property value, keeping the key index current.
func (el *element) SetProperty(key string, value interface{}) error {
	if err := graph.ValidateKey(key); err != nil {
		return fmt.Errorf("set property: %w", err)
	}

	el.g.mu.Lock()
	defer el.g.mu.Unlock()

	if el.removed {
		return fmt.Errorf("set property on %s %q: %w", el.kind, el.id, graph.ErrNotFound)
	}

	el.g.setPropertyLocked(el, key, value)

	return nil
}

// RemoveProperty removes a property, keeping the key index current.
func (el *element) RemoveProperty(key string) error {
	el.g.mu.Lock()
	defer el.g.mu.Unlock()

	if el.removed {
		return fmt.Errorf("remove property on %s %q: %w", el.kind, el.id, graph.ErrNotFound)
	}

	el.g.setPropertyLocked(el, key, nil)

	return nil
}

// String returns a short description such as v[1] or e[7][1-knows->2].
func (el *element) String() string {
	if el.kind == graph.VertexKind {
		return fmt.Sprintf("v[%s]", el.id)
	}

	e := el.self.(*edge)

	return fmt.Sprintf("e[%s][%s-%s->%s]", el.id, e.out.id, el.label, e.in.id)
}

// vertex is the in-memory vertex record. Adjacency is kept per direction
// as edge label -> edge id -> edge.
type vertex struct {
	element
	adjacency [2]map[string]map[string]*edge
}

func newVertex(g *InMemoryGraph, id, label string) *vertex {
	v := &vertex{
		element: element{
			g:     g,
			kind:  graph.VertexKind,
			id:    id,
			label: label,
			props: make(map[string]interface{}),
		},
		adjacency: [2]map[string]map[string]*edge{
			make(map[string]map[string]*edge),
			make(map[string]map[string]*edge),
		},
	}
	v.self = v

	return v
}

func (v *vertex) link(dir graph.Direction, e *edge) {
	byLabel := v.adjacency[dir]
	if byLabel[e.label] == nil {
		byLabel[e.label] = make(map[string]*edge)
	}

	byLabel[e.label][e.id] = e
}

func (v *vertex) unlink(dir graph.Direction, e *edge) {
	byLabel := v.adjacency[dir]
	delete(byLabel[e.label], e.id)

	if len(byLabel[e.label]) == 0 {
		delete(byLabel, e.label)
	}
}

// incident returns the incident edges in ascending id order, out edges
// before in edges for Both. Callers must hold at least the read lock.
func (v *vertex) incident(dir graph.Direction, labels ...string) []*edge {
	var dirs []graph.Direction

	switch dir {
	case graph.Out, graph.In:
		dirs = []graph.Direction{dir}
	default:
		dirs = []graph.Direction{graph.Out, graph.In}
	}

	var result []*edge
	for _, d := range dirs {
		var list []*edge

		byLabel := v.adjacency[d]
		if len(labels) == 0 {
			for _, edges := range byLabel {
				for _, e := range edges {
					list = append(list, e)
				}
			}
		} else {
			for _, label := range uniqueStrings(labels) {
				for _, e := range byLabel[label] {
					list = append(list, e)
				}
			}
		}

		sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
		result = append(result, list...)
	}

	return result
}

// Edges returns the incident edges.
func (v *vertex) Edges(dir graph.Direction, labels ...string) []graph.Edge {
	v.g.mu.RLock()
	defer v.g.mu.RUnlock()

	return edgesAsInterface(v.incident(dir, labels...))
}

// Vertices returns the adjacent vertices, one per incident edge.
func (v *vertex) Vertices(dir graph.Direction, labels ...string) []graph.Vertex {
	v.g.mu.RLock()
	defer v.g.mu.RUnlock()

	var result []graph.Vertex
	if dir == graph.Out || dir == graph.Both {
		for _, e := range v.incident(graph.Out, labels...) {
			result = append(result, e.in)
		}
	}

	if dir == graph.In || dir == graph.Both {
		for _, e := range v.incident(graph.In, labels...) {
			result = append(result, e.out)
		}
	}

	return result
}

// AddEdge creates an edge with an assigned id from this vertex to in.
func (v *vertex) AddEdge(label string, in graph.Vertex, props graph.Properties) (graph.Edge, error) {
	if err := validateProperties(props); err != nil {
		return nil, fmt.Errorf("add edge: %w", err)
	}

	v.g.mu.Lock()
	defer v.g.mu.Unlock()

	inVertex, exists := v.g.vertices[in.ID()]
	if !exists {
		return nil, fmt.Errorf("add edge from %q to %q: %w", v.id, in.ID(), graph.ErrUnknownEdgeVertices)
	}

	return v.g.addEdgeLocked("", label, v, inVertex, props)
}

// Remove deletes the vertex and all of its incident edges.
func (v *vertex) Remove() error {
	v.g.mu.Lock()
	defer v.g.mu.Unlock()

	if v.removed {
		return fmt.Errorf("remove vertex %q: %w", v.id, graph.ErrNotFound)
	}

	v.g.removeVertexLocked(v)

	return nil
}

// edge is the in-memory edge record. Its endpoints never change.
type edge struct {
	element
	out *vertex
	in  *vertex
}

func newEdge(g *InMemoryGraph, id, label string, out, in *vertex) *edge {
	e := &edge{
		element: element{
			g:     g,
			kind:  graph.EdgeKind,
			id:    id,
			label: label,
			props: make(map[string]interface{}),
		},
		out: out,
		in:  in,
	}
	e.self = e

	return e
}

// OutVertex returns the tail vertex.
func (e *edge) OutVertex() graph.Vertex { return e.out }

// InVertex returns the head vertex.
func (e *edge) InVertex() graph.Vertex { return e.in }

// Vertices returns the endpoint(s) in the requested direction.
func (e *edge) Vertices(dir graph.Direction) []graph.Vertex {
	switch dir {
	case graph.Out:
		return []graph.Vertex{e.out}
	case graph.In:
		return []graph.Vertex{e.in}
	default:
		return []graph.Vertex{e.out, e.in}
	}
}

// Remove deletes the edge.
func (e *edge) Remove() error {
	e.g.mu.Lock()
	defer e.g.mu.Unlock()

	if e.removed {
		return fmt.Errorf("remove edge %q: %w", e.id, graph.ErrNotFound)
	}

	e.g.removeEdgeLocked(e)

	return nil
}

func edgesAsInterface(list []*edge) []graph.Edge {
	result := make([]graph.Edge, len(list))
	for i, e := range list {
		result[i] = e
	}

	return result
}

func uniqueStrings(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	result := make([]string, 0, len(list))

	for _, s := range list {
		if _, exists := seen[s]; exists {
			continue
		}

		seen[s] = struct{}{}
		result = append(result, s)
	}

	return result
}
