/*
	graph package defines the types that outline the behavior of property
	graph stores: vertices and edges carrying a label and a set of
	properties, plus per-kind key indexes over those properties.
*/

package graph

// Kind identifies the element family an identifier or index belongs to.
type Kind int

const (
	// VertexKind identifies vertices.
	VertexKind Kind = iota
	// EdgeKind identifies edges.
	EdgeKind
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case VertexKind:
		return "vertex"
	case EdgeKind:
		return "edge"
	default:
		return "unknown"
	}
}

// Direction selects which incident edges of a vertex are considered.
type Direction int

const (
	// Out selects edges whose out (tail) vertex is the current vertex.
	Out Direction = iota
	// In selects edges whose in (head) vertex is the current vertex.
	In
	// Both selects edges in either direction.
	Both
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case Out:
		return "OUT"
	case In:
		return "IN"
	default:
		return "BOTH"
	}
}

// Opposite returns the reverse direction. Both is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Out:
		return In
	case In:
		return Out
	default:
		return Both
	}
}

const (
	// DefaultVertexLabel is assigned to vertices created without a label.
	DefaultVertexLabel = "vertex"
	// DefaultEdgeLabel is assigned to edges created without a label.
	DefaultEdgeLabel = "edge"
)

// Properties is the key/value set used when creating elements.
type Properties map[string]interface{}

// Graph should be implemented by property graph stores.
type Graph interface {
	// AddVertex creates a new vertex. An empty id asks the graph to assign
	// one; an explicit id that is already in use fails with
	// ErrDuplicateIdentifier and nothing is inserted.
	AddVertex(id, label string, props Properties) (Vertex, error)

	// AddEdge creates a new edge from the vertex outID to the vertex inID.
	AddEdge(id, label, outID, inID string, props Properties) (Edge, error)

	// Element returns the element of the given kind with the specified id.
	Element(kind Kind, id string) (Element, error)

	// Vertex returns the vertex with the specified id.
	Vertex(id string) (Vertex, error)

	// Edge returns the edge with the specified id.
	Edge(id string) (Edge, error)

	// RemoveElement deletes an element. Removing a vertex also removes
	// every incident edge.
	RemoveElement(kind Kind, id string) error

	// Property returns the value stored under key for an element.
	Property(kind Kind, id, key string) (interface{}, bool, error)

	// SetProperty sets (or with a nil value, removes) a property.
	SetProperty(kind Kind, id, key string, value interface{}) error

	// RemoveProperty deletes a property if present.
	RemoveProperty(kind Kind, id, key string) error

	// Adjacency returns the edges incident to a vertex in the given
	// direction, optionally restricted to a set of edge labels.
	Adjacency(vertexID string, dir Direction, labels ...string) ([]Edge, error)

	// Elements returns an iterator over every element of a kind.
	Elements(kind Kind) (ElementIterator, error)

	// CreateKeyIndex backfills and starts maintaining an index for key.
	CreateKeyIndex(kind Kind, key string) error

	// DropKeyIndex discards the index for key.
	DropKeyIndex(kind Kind, key string) error

	// IndexedKeys returns the currently indexed keys of a kind.
	IndexedKeys(kind Kind) []string

	// Lookup returns the ids of the elements whose key equals value. It
	// uses the index when one exists and a full scan otherwise.
	Lookup(kind Kind, key string, value interface{}) ([]string, error)

	// LookupElements is Lookup resolving ids to element handles.
	LookupElements(kind Kind, key string, value interface{}) ([]Element, error)

	// Annotations returns the graph-level metadata.
	Annotations() Annotations
}

// Element is the behavior shared by vertices and edges.
type Element interface {
	// ID returns the element identifier.
	ID() string

	// Label returns the element label.
	Label() string

	// Kind returns the element kind.
	Kind() Kind

	// Property returns the value stored under key.
	Property(key string) (interface{}, bool)

	// Properties returns the properties with the given keys, or all
	// properties when no key is supplied, sorted by key.
	Properties(keys ...string) []Property

	// Keys returns the sorted property keys.
	Keys() []string

	// SetProperty sets a property value.
	SetProperty(key string, value interface{}) error

	// RemoveProperty removes a property.
	RemoveProperty(key string) error

	// Remove deletes the element from its graph.
	Remove() error
}

// Vertex is an Element with incident edges.
type Vertex interface {
	Element

	// Edges returns the incident edges.
	Edges(dir Direction, labels ...string) []Edge

	// Vertices returns the adjacent vertices, one per incident edge.
	Vertices(dir Direction, labels ...string) []Vertex

	// AddEdge creates an edge from this vertex to in.
	AddEdge(label string, in Vertex, props Properties) (Edge, error)
}

// Edge is an Element connecting two vertices.
type Edge interface {
	Element

	// OutVertex returns the tail vertex.
	OutVertex() Vertex

	// InVertex returns the head vertex.
	InVertex() Vertex

	// Vertices returns the endpoint(s) in the requested direction. Both
	// yields the out vertex followed by the in vertex.
	Vertices(dir Direction) []Vertex
}

// Property is a key/value pair owned by an element.
type Property struct {
	Key     string
	Value   interface{}
	Element Element
}

// Annotations holds graph-level metadata that is not indexed.
type Annotations interface {
	// Get returns the annotation stored under key.
	Get(key string) (interface{}, bool)

	// Set stores an annotation.
	Set(key string, value interface{}) error

	// Keys returns the annotation keys.
	Keys() []string
}

// ElementIterator is implemented by types that iterate graph elements.
type ElementIterator interface {
	Iterator

	// Element returns the currently fetched element.
	Element() Element
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}
