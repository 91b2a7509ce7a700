/*
	coloring package provides a vertex program assigning colors to the
	vertices of a graph so that no two adjacent vertices share a color.
	Edges are treated as undirected.
*/

package coloring

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/mycok/uGraph/computer"
	"github.com/mycok/uGraph/computer/message"
	"github.com/mycok/uGraph/graph"
)

// Static and compile-time check to ensure colorMessage implements
// the Message interface.
var _ message.Message = (*colorMessage)(nil)

type colorMessage struct {
	id    string
	token uint64
	color int
}

// Type returns the type of this message.
func (m colorMessage) Type() string { return "color" }

// State is the compute value of each vertex.
type State struct {
	// Color assigned to the vertex, 0 while uncolored.
	Color int

	token uint64
	// Keeps track of all colors assigned to the vertex's neighbors.
	usedColors map[int]bool
}

func (s State) asMessage(id string) colorMessage {
	return colorMessage{id: id, token: s.token, color: s.Color}
}

// Config defines the coloring program options.
type Config struct {
	// Vertices already holding a positive integer under this key keep
	// that color; the assigned colors are written back to it. If not
	// specified, "color" will be used instead.
	ColorKey string

	// Only edges with these labels connect vertices. All edges do when
	// empty.
	EdgeLabels []string

	// Seed for the tokens deciding which vertex picks a color first.
	Seed uint64
}

// Program is a VertexProgram coloring a graph. Uncolored vertices
// exchange random tokens; a vertex holding the highest token among its
// uncolored neighbors picks the smallest color none of its neighbors
// uses and announces it.
type Program struct {
	cfg Config
}

// NewProgram returns a coloring program using the provided config options.
func NewProgram(cfg Config) *Program {
	if cfg.ColorKey == "" {
		cfg.ColorKey = "color"
	}

	return &Program{cfg: cfg}
}

// Setup is a no-op.
func (p *Program) Setup(*computer.Memory) error { return nil }

// InitialValue picks up pre-assigned colors.
func (p *Program) InitialValue(v graph.Vertex) interface{} {
	var state State
	if val, exists := v.Property(p.cfg.ColorKey); exists {
		if n, ok := graph.NormalizeValue(val).(int64); ok && n > 0 {
			state.Color = int(n)
		}
	}

	return state
}

// Execute runs one round of color negotiation for v.
func (p *Program) Execute(g *computer.Graph, v *computer.Vertex, msgs message.Iterator) error {
	defer v.VoteToHalt()

	state := v.Value().(State)

	if g.Superstep() == 0 {
		// An isolated vertex takes the first color right away.
		if state.Color == 0 && len(v.Edges(graph.Both, p.cfg.EdgeLabels...)) == 0 {
			state.Color = 1
			v.SetValue(state)

			return nil
		}

		state.token = xxhash.Sum64String(strconv.FormatUint(p.cfg.Seed, 10) + "/" + v.ID())
		state.usedColors = make(map[int]bool)
		v.SetValue(state)

		return p.broadcast(g, v, state)
	}

	if state.Color != 0 {
		return nil
	}

	// Ties between equal tokens are broken by vertex id.
	shouldPickNextColor := true
	for msgs.Next() {
		msg := msgs.Message().(colorMessage)
		if msg.id == v.ID() {
			continue
		}

		if msg.color != 0 {
			state.usedColors[msg.color] = true
		} else if state.token < msg.token || (state.token == msg.token && v.ID() < msg.id) {
			shouldPickNextColor = false
		}
	}

	// Find the minimum unused color and announce it to neighbors.
	if shouldPickNextColor {
		nextColor := 1
		for state.usedColors[nextColor] {
			nextColor++
		}

		state.Color = nextColor
	}

	v.SetValue(state)

	return p.broadcast(g, v, state)
}

func (p *Program) broadcast(g *computer.Graph, v *computer.Vertex, state State) error {
	return g.BroadcastToNeighbors(v, graph.Both, state.asMessage(v.ID()), p.cfg.EdgeLabels...)
}

// Terminate never stops the run early.
func (p *Program) Terminate(*computer.Memory) (bool, error) { return false, nil }

// ComputeKey returns the property colors are written to.
func (p *Program) ComputeKey() string { return p.cfg.ColorKey }

// ExportValue writes the color as an int.
func (p *Program) ExportValue(value interface{}) (interface{}, bool) {
	state, ok := value.(State)
	if !ok || state.Color == 0 {
		return nil, false
	}

	return state.Color, true
}

// Colors extracts the assigned colors from the result of a run and returns
// them with the number of distinct colors used.
func Colors(res *computer.Result) (map[string]int, int) {
	var (
		colors = make(map[string]int, len(res.Values))
		used   = make(map[int]struct{})
	)

	for id, val := range res.Values {
		state, _ := val.(State)
		colors[id] = state.Color
		used[state.Color] = struct{}{}
	}

	return colors, len(used)
}
