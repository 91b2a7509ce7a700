/*
	pagerank package provides a vertex program computing PageRank scores
	with the graph computer.
*/

package pagerank

import (
	"fmt"
	"math"

	"github.com/mycok/uGraph/computer"
	"github.com/mycok/uGraph/computer/aggregator"
	"github.com/mycok/uGraph/computer/message"
	"github.com/mycok/uGraph/graph"
)

// Static and compile-time check to ensure ScoreMessage implements
// the Message interface.
var _ message.Message = (*ScoreMessage)(nil)

// Memory keys used by the program.
const (
	pageCountKey = "page_count"
	sadKey       = "sad"
	residualKey  = "residual"
)

// ScoreMessage distributes PageRank scores to neighbors.
type ScoreMessage struct {
	Score float64
}

// Type returns the type of this message.
func (m ScoreMessage) Type() string { return "score" }

// Program is a VertexProgram computing PageRank scores. Superstep 0
// counts the vertices, superstep 1 distributes a score of 1/N to each of
// them and every following superstep redistributes scores along out edges
// until the scores converge.
type Program struct {
	cfg Config
}

// NewProgram returns a PageRank program using the provided config options.
func NewProgram(cfg Config) (*Program, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("PageRank config validation failed: %w", err)
	}

	return &Program{cfg: cfg}, nil
}

// Setup registers the accumulators the program needs.
func (p *Program) Setup(mem *computer.Memory) error {
	mem.Register(pageCountKey, new(aggregator.Int64Accumulator))
	mem.Register(sadKey, new(aggregator.Float64Accumulator))
	mem.Register(residualKey, new(aggregator.Float64Accumulator))

	return nil
}

// InitialValue returns a zero score.
func (p *Program) InitialValue(graph.Vertex) interface{} { return 0.0 }

// Execute updates the score of v.
func (p *Program) Execute(g *computer.Graph, v *computer.Vertex, msgs message.Iterator) error {
	mem := g.Memory()

	if g.Superstep() == 0 {
		return mem.Aggregate(pageCountKey, 1)
	}

	var (
		newScore  float64
		pageCount = float64(mem.Int64(pageCountKey))
		d         = p.cfg.DampingFactor
	)

	if g.Superstep() == 1 {
		newScore = 1.0 / pageCount
	} else {
		newScore = (1.0 - d) / pageCount
		for msgs.Next() {
			newScore += d * msgs.Message().(ScoreMessage).Score
		}

		// Scores of dead ends during the previous superstep are spread
		// over every vertex.
		newScore += d * mem.Float64(residualKey)
	}

	if err := mem.Aggregate(sadKey, math.Abs(v.Value().(float64)-newScore)); err != nil {
		return err
	}

	v.SetValue(newScore)

	outDegree := float64(len(v.Edges(graph.Out, p.cfg.EdgeLabels...)))
	if outDegree == 0 {
		return mem.Aggregate(residualKey, newScore/pageCount)
	}

	return g.BroadcastToNeighbors(v, graph.Out, ScoreMessage{Score: newScore / outDegree}, p.cfg.EdgeLabels...)
}

// Terminate stops the run once the scores converged and resets the
// per-superstep accumulators otherwise.
func (p *Program) Terminate(mem *computer.Memory) (bool, error) {
	// Supersteps 0 and 1 initialise the scores.
	if mem.Superstep() > 1 && mem.Float64(sadKey) < p.cfg.MinSADForConvergence {
		return true, nil
	}

	mem.Set(sadKey, 0.0)
	mem.Set(residualKey, 0.0)

	return false, nil
}

// ComputeKey returns the property scores are written to.
func (p *Program) ComputeKey() string { return p.cfg.ComputeKey }

// Scores extracts the PageRank scores from the result of a run.
func Scores(res *computer.Result) map[string]float64 {
	scores := make(map[string]float64, len(res.Values))
	for id, val := range res.Values {
		score, _ := val.(float64)
		scores[id] = score
	}

	return scores
}
