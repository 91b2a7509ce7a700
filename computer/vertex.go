package computer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mycok/uGraph/computer/message"
	"github.com/mycok/uGraph/graph"
)

// Vertex is the per-run view of a graph vertex. It carries the vertex's
// compute value, its two message queues and, under strict isolation, the
// property writes buffered until the superstep barrier.
type Vertex struct {
	id     string
	label  string
	source graph.Vertex
	g      *Graph

	mu        sync.RWMutex
	value     interface{}
	committed interface{}
	props     map[string]interface{}

	active    bool
	msgQueues [2]message.Queue
}

// ID returns the vertex id.
func (v *Vertex) ID() string { return v.id }

// Label returns the vertex label.
func (v *Vertex) Label() string { return v.label }

// Element returns the stored vertex the view wraps.
func (v *Vertex) Element() graph.Vertex { return v.source }

// Value returns the vertex's compute value, including writes made during
// the current superstep.
func (v *Vertex) Value() interface{} {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.value
}

// SetValue sets the vertex's compute value. Other vertices observe it
// after the barrier under strict isolation and immediately under dirty
// isolation.
func (v *Vertex) SetValue(val interface{}) {
	v.mu.Lock()
	v.value = val
	v.mu.Unlock()
}

// VoteToHalt marks the vertex inactive. A halted vertex is executed again
// only if it receives a message.
func (v *Vertex) VoteToHalt() { v.active = false }

// Edges returns the incident edges of the stored vertex.
func (v *Vertex) Edges(dir graph.Direction, labels ...string) []graph.Edge {
	return v.source.Edges(dir, labels...)
}

// Property returns a property of the vertex. The vertex observes its own
// buffered writes.
func (v *Vertex) Property(key string) (interface{}, bool) {
	v.mu.RLock()
	val, buffered := v.props[key]
	v.mu.RUnlock()

	if buffered {
		return val, val != nil
	}

	return v.source.Property(key)
}

// SetProperty writes a property of the vertex; a nil value removes it.
// Under strict isolation the write is applied at the barrier and dropped
// if the superstep faults.
func (v *Vertex) SetProperty(key string, val interface{}) error {
	if err := graph.ValidateKey(key); err != nil {
		return fmt.Errorf("set property on vertex %q: %w", v.id, err)
	}

	if v.g.isolation == IsolationDirtyBSP {
		return v.g.source.SetProperty(graph.VertexKind, v.id, key, val)
	}

	v.mu.Lock()
	if v.props == nil {
		v.props = make(map[string]interface{})
	}
	v.props[key] = val
	v.mu.Unlock()

	return nil
}

// observedValue returns the compute value other vertices see.
func (v *Vertex) observedValue(isolation Isolation) interface{} {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if isolation == IsolationDirtyBSP {
		return v.value
	}

	return v.committed
}

// commit publishes the compute value and applies buffered property writes
// in key order.
func (v *Vertex) commit(store graph.Graph) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.committed = v.value

	keys := make([]string, 0, len(v.props))
	for key := range v.props {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if err := store.SetProperty(graph.VertexKind, v.id, key, v.props[key]); err != nil {
			return fmt.Errorf("commit property %q of vertex %q: %w", key, v.id, err)
		}
	}

	v.props = nil

	return nil
}

// rollback discards the writes of a faulted superstep.
func (v *Vertex) rollback() {
	v.mu.Lock()
	v.value = v.committed
	v.props = nil
	v.mu.Unlock()
}
