package computer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uGraph/computer/aggregator"
	"github.com/mycok/uGraph/graph"
)

// Computer runs vertex programs over a graph. A Computer may run several
// programs concurrently; each run owns its vertex views and queues and
// shares only the underlying graph.
type Computer struct {
	g       graph.Graph
	cfg     Config
	metrics *metrics
}

// Result is the outcome of a compute run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Memory holds the global memory committed at the last barrier.
	Memory map[string]interface{}

	// Values maps every vertex id to its final compute value.
	Values map[string]interface{}

	// Supersteps is the number of supersteps executed.
	Supersteps int

	// Halted is false when the run stopped at Config.MaxSupersteps.
	Halted bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// New returns a Computer for g using the provided configuration.
func New(g graph.Graph, cfg Config) (*Computer, error) {
	if g == nil {
		return nil, errors.New("graph computer: graph not provided")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graph computer config validation failed: %w", err)
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, err
	}

	return &Computer{g: g, cfg: cfg, metrics: m}, nil
}

// Compute runs program over every vertex of the graph until all vertices
// have voted to halt with no message in flight, program.Terminate asks to
// stop, or Config.MaxSupersteps is reached. combiner folds global memory
// keys the program did not register an aggregator for; it may be nil.
// The context is checked between supersteps.
//
// When the program declares a compute key the final compute values are
// written back to the graph. A faulted run writes nothing back.
func (c *Computer) Compute(
	ctx context.Context, program VertexProgram, isolation Isolation, combiner aggregator.Combiner,
) (*Result, error) {

	if program == nil {
		return nil, errors.New("compute: vertex program not provided")
	}

	var (
		runID  = uuid.NewString()
		start  = c.cfg.Clock.Now()
		logger = c.cfg.Logger.WithFields(logrus.Fields{
			"run_id":    runID,
			"isolation": isolation.String(),
		})
		mem = newMemory(combiner)
	)

	if err := program.Setup(mem); err != nil {
		return nil, fmt.Errorf("compute: setup: %w", err)
	}

	// Seeds written during setup are visible from superstep 0.
	mem.commit()

	g, err := newGraph(c.g, c.cfg, program, isolation, mem, c.metrics)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}

	logger.WithField("vertices", g.NumVertices()).Info("compute run started")

	var halted bool
	exec := NewExecutor(g, ExecutorCallbacks{
		PostStep: func(_ context.Context, g *Graph, active int) error {
			c.metrics.superstep(active)
			logger.WithFields(logrus.Fields{
				"superstep": g.Superstep(),
				"active":    active,
			}).Debug("superstep completed")

			return g.commit()
		},
		ShouldRunAnotherStep: func(_ context.Context, g *Graph, _ int) (bool, error) {
			stop, err := program.Terminate(g.mem)
			if err != nil {
				return false, fmt.Errorf("terminate: %w", err)
			}

			if stop || !g.pendingWork() {
				halted = true

				return false, nil
			}

			return true, nil
		},
	})

	if c.cfg.MaxSupersteps > 0 {
		err = exec.RunSteps(ctx, c.cfg.MaxSupersteps)
	} else {
		err = exec.RunToCompletion(ctx)
	}

	// A halted run stops on its last superstep; otherwise the executor
	// already moved past it.
	supersteps := exec.Superstep()
	if halted {
		supersteps++
	}

	if err != nil {
		g.rollback()
		_ = g.Close()

		logger.WithError(err).WithField("superstep", supersteps).Error("compute run failed")

		return nil, fmt.Errorf("compute run %s: %w", runID, err)
	}

	if !halted {
		logger.WithField("max_supersteps", c.cfg.MaxSupersteps).Warn("compute run stopped before halting")
	}

	res := &Result{
		RunID:      runID,
		Memory:     mem.Snapshot(),
		Values:     make(map[string]interface{}, g.NumVertices()),
		Supersteps: supersteps,
		Halted:     halted,
	}

	for _, v := range g.order {
		res.Values[v.id] = v.Value()
	}

	if err = c.writeBack(program, g); err != nil {
		_ = g.Close()

		return nil, fmt.Errorf("compute run %s: write back: %w", runID, err)
	}

	if err = g.Close(); err != nil {
		return nil, fmt.Errorf("compute run %s: %w", runID, err)
	}

	res.Duration = c.cfg.Clock.Now().Sub(start)
	logger.WithFields(logrus.Fields{
		"supersteps": res.Supersteps,
		"halted":     res.Halted,
		"duration":   res.Duration,
	}).Info("compute run completed")

	return res, nil
}

// writeBack stores the final compute values under the program's compute
// key.
func (c *Computer) writeBack(program VertexProgram, g *Graph) error {
	key := program.ComputeKey()
	if key == "" {
		return nil
	}

	exporter, _ := program.(ValueExporter)

	var err error
	for _, v := range g.order {
		val := v.Value()
		if exporter != nil {
			var ok bool
			if val, ok = exporter.ExportValue(val); !ok {
				continue
			}
		}

		if setErr := c.g.SetProperty(graph.VertexKind, v.id, key, val); setErr != nil {
			err = multierror.Append(err, setErr)
		}
	}

	return err
}
