package computer

import (
	"github.com/mycok/uGraph/computer/message"
	"github.com/mycok/uGraph/graph"
)

//go:generate mockgen -package mocks -destination mocks/mock_program.go github.com/mycok/uGraph/computer VertexProgram

// Isolation selects what a vertex observes of the writes other vertices
// make during the same superstep.
type Isolation int

const (
	// IsolationBSP only exposes state committed at the end of the previous
	// superstep. Compute values and property writes are buffered and
	// applied at the superstep barrier.
	IsolationBSP Isolation = iota

	// IsolationDirtyBSP applies property writes to the graph immediately
	// and exposes compute values as soon as they are set. Results may
	// depend on vertex execution order, and writes made before a fault
	// persist.
	IsolationDirtyBSP
)

// String returns the name of the isolation policy.
func (i Isolation) String() string {
	if i == IsolationDirtyBSP {
		return "dirty_bsp"
	}

	return "bsp"
}

// VertexProgram is implemented by algorithms run by the graph computer.
type VertexProgram interface {
	// Setup registers aggregators and seeds global memory before the
	// first superstep.
	Setup(mem *Memory) error

	// InitialValue returns the compute value a vertex starts with.
	InitialValue(v graph.Vertex) interface{}

	// Execute runs the program on one active vertex. msgs iterates the
	// messages sent to the vertex during the previous superstep.
	Execute(g *Graph, v *Vertex, msgs message.Iterator) error

	// Terminate is invoked after every superstep barrier and reports
	// whether the run should stop even though vertices are still active.
	// It may reset aggregators for the next superstep.
	Terminate(mem *Memory) (bool, error)

	// ComputeKey names the vertex property the final compute values are
	// written back to. An empty key disables write-back.
	ComputeKey() string
}

// ValueExporter can be implemented by a VertexProgram whose compute value
// is not itself a property value. ExportValue converts the final compute
// value before write-back; returning false skips the vertex.
type ValueExporter interface {
	ExportValue(value interface{}) (interface{}, bool)
}
