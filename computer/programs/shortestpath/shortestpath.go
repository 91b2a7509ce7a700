/*
	shortestpath package provides a vertex program computing single source
	shortest paths with the graph computer. Edge weights are read from an
	edge property and must not be negative.
*/

package shortestpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/mycok/uGraph/computer"
	"github.com/mycok/uGraph/computer/message"
	"github.com/mycok/uGraph/graph"
)

var (
	// ErrNegativeWeight is returned when an edge carries a negative weight.
	ErrNegativeWeight = errors.New("negative edge weights not supported")

	// ErrInvalidWeight is returned when an edge weight is not a number.
	ErrInvalidWeight = errors.New("edge weight is not a number")

	// ErrUnreachable is returned by PathTo for vertices the source cannot
	// reach.
	ErrUnreachable = errors.New("vertex is not reachable from the source")
)

// Static and compile-time check to ensure CostMessage implements
// the Message interface.
var _ message.Message = (*CostMessage)(nil)

// CostMessage announces the cost of a path reaching a vertex through From.
type CostMessage struct {
	From string
	Cost float64
}

// Type returns the type of this message.
func (m CostMessage) Type() string { return "cost" }

// State is the compute value of each vertex.
type State struct {
	// Distance from the source, +Inf while unreached.
	Distance float64

	// Previous is the vertex preceding this one on the shortest path.
	Previous string
}

// Config defines the shortest path program options.
type Config struct {
	// ID of the vertex paths start from.
	Source string

	// Direction edges are followed in. Defaults to graph.Out.
	Direction graph.Direction

	// Only edges with these labels are followed. All edges are followed
	// when empty.
	EdgeLabels []string

	// The edge property holding the weight. Edges without it weigh 1. If
	// not specified, "weight" will be used instead.
	WeightKey string

	// The vertex property distances are written to. If not specified,
	// "distance" will be used instead.
	ComputeKey string
}

func (cfg *Config) validate() error {
	if cfg.Source == "" {
		return errors.New("source vertex not provided")
	}

	if cfg.WeightKey == "" {
		cfg.WeightKey = "weight"
	}

	if cfg.ComputeKey == "" {
		cfg.ComputeKey = "distance"
	}

	return nil
}

// Program is a VertexProgram computing the distance of every vertex from
// a source vertex. A vertex that learns of a shorter path announces it to
// its neighbors and votes to halt; the run ends once no announcement is
// in flight.
type Program struct {
	cfg Config
}

// NewProgram returns a shortest path program using the provided config
// options.
func NewProgram(cfg Config) (*Program, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("shortest path config validation failed: %w", err)
	}

	return &Program{cfg: cfg}, nil
}

// Setup is a no-op.
func (p *Program) Setup(*computer.Memory) error { return nil }

// InitialValue marks every vertex as unreached.
func (p *Program) InitialValue(graph.Vertex) interface{} {
	return State{Distance: math.Inf(1)}
}

// Execute relaxes the distance of v.
func (p *Program) Execute(g *computer.Graph, v *computer.Vertex, msgs message.Iterator) error {
	defer v.VoteToHalt()

	var (
		minDistance = math.Inf(1)
		via         string
	)

	if g.Superstep() == 0 && v.ID() == p.cfg.Source {
		minDistance = 0
	}

	for msgs.Next() {
		msg := msgs.Message().(CostMessage)
		if msg.Cost < minDistance {
			minDistance = msg.Cost
			via = msg.From
		}
	}

	state := v.Value().(State)
	if minDistance >= state.Distance {
		return nil
	}

	v.SetValue(State{Distance: minDistance, Previous: via})

	for _, e := range v.Edges(p.cfg.Direction, p.cfg.EdgeLabels...) {
		weight, err := p.weight(e)
		if err != nil {
			return err
		}

		msg := CostMessage{From: v.ID(), Cost: minDistance + weight}
		if err = g.SendMessage(neighbor(e, v.ID(), p.cfg.Direction), msg); err != nil {
			return err
		}
	}

	return nil
}

// Terminate never stops the run early.
func (p *Program) Terminate(*computer.Memory) (bool, error) { return false, nil }

// ComputeKey returns the property distances are written to.
func (p *Program) ComputeKey() string { return p.cfg.ComputeKey }

// ExportValue writes the distance of reached vertices only.
func (p *Program) ExportValue(value interface{}) (interface{}, bool) {
	state, ok := value.(State)
	if !ok || math.IsInf(state.Distance, 1) {
		return nil, false
	}

	return state.Distance, true
}

func (p *Program) weight(e graph.Edge) (float64, error) {
	val, exists := e.Property(p.cfg.WeightKey)
	if !exists {
		return 1, nil
	}

	var weight float64
	switch n := graph.NormalizeValue(val).(type) {
	case int64:
		weight = float64(n)
	case uint64:
		weight = float64(n)
	case float64:
		weight = n
	default:
		return 0, fmt.Errorf("edge %q: %w", e.ID(), ErrInvalidWeight)
	}

	if weight < 0 || math.IsNaN(weight) {
		return 0, fmt.Errorf("edge %q: %w", e.ID(), ErrNegativeWeight)
	}

	return weight, nil
}

// neighbor returns the vertex reached from id by following e in dir.
func neighbor(e graph.Edge, id string, dir graph.Direction) string {
	switch dir {
	case graph.Out:
		return e.InVertex().ID()
	case graph.In:
		return e.OutVertex().ID()
	}

	if out := e.OutVertex().ID(); out != id {
		return out
	}

	return e.InVertex().ID()
}

// PathTo rebuilds the shortest path from the source to dest out of the
// result of a run and returns it with its cost.
func PathTo(res *computer.Result, dest string) ([]string, float64, error) {
	state, err := stateOf(res, dest)
	if err != nil {
		return nil, 0, err
	}

	if math.IsInf(state.Distance, 1) {
		return nil, 0, fmt.Errorf("path to %q: %w", dest, ErrUnreachable)
	}

	var (
		cost = state.Distance
		path = []string{dest}
	)

	for state.Previous != "" {
		path = append(path, state.Previous)
		if state, err = stateOf(res, state.Previous); err != nil {
			return nil, 0, err
		}
	}

	// Reverse path slice in place to form path from src->dst
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, cost, nil
}

func stateOf(res *computer.Result, id string) (State, error) {
	val, exists := res.Values[id]
	if !exists {
		return State{}, fmt.Errorf("unknown vertex with ID %q: %w", id, graph.ErrNotFound)
	}

	state, ok := val.(State)
	if !ok {
		return State{}, fmt.Errorf("vertex %q holds no path state", id)
	}

	return state, nil
}
