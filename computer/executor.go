package computer

import "context"

// ExecutorCallbacks encapsulates a series of callbacks that are invoked by an
// Executor instance on a graph. All callbacks are optional and will be ignored
// if not specified.
type ExecutorCallbacks struct {
	// PreStep, if defined, is invoked before executing a superstep.
	PreStep func(ctx context.Context, g *Graph) error

	// PostStep, if defined, is invoked after a superstep completed without
	// faults.
	PostStep func(ctx context.Context, g *Graph, activeInStep int) error

	// ShouldRunAnotherStep, if defined, is invoked after PostStep and
	// decides whether the executor runs another superstep.
	ShouldRunAnotherStep func(ctx context.Context, g *Graph, activeInStep int) (bool, error)
}

func initWithDefaultCallbacks(cb *ExecutorCallbacks) {
	if cb.PreStep == nil {
		cb.PreStep = func(context.Context, *Graph) error { return nil }
	}

	if cb.PostStep == nil {
		cb.PostStep = func(context.Context, *Graph, int) error { return nil }
	}

	if cb.ShouldRunAnotherStep == nil {
		cb.ShouldRunAnotherStep = func(context.Context, *Graph, int) (bool, error) {
			return true, nil
		}
	}
}

// Executor runs supersteps on a graph until an error occurs or an exit
// condition is met.
type Executor struct {
	g   *Graph
	cbs ExecutorCallbacks
}

// NewExecutor returns an Executor for g starting at superstep 0.
func NewExecutor(g *Graph, cbs ExecutorCallbacks) *Executor {
	initWithDefaultCallbacks(&cbs)
	g.superstep = 0

	return &Executor{g: g, cbs: cbs}
}

// Graph returns the graph instance associated with this executor.
func (ex *Executor) Graph() *Graph { return ex.g }

// Superstep returns the current superstep.
func (ex *Executor) Superstep() int { return ex.g.Superstep() }

// RunToCompletion runs supersteps until the context expires, an error
// occurs or ShouldRunAnotherStep returns false.
func (ex *Executor) RunToCompletion(ctx context.Context) error {
	return ex.run(ctx, -1)
}

// RunSteps executes at most numOfSteps supersteps, stopping earlier for
// the same reasons as RunToCompletion.
func (ex *Executor) RunSteps(ctx context.Context, numOfSteps int) error {
	return ex.run(ctx, numOfSteps)
}

func (ex *Executor) run(ctx context.Context, maxSteps int) error {
	var (
		activeInStep int
		err          error
		shouldRun    bool
		cbs          = ex.cbs
	)

	for ; maxSteps != 0; ex.g.superstep, maxSteps = ex.g.superstep+1, maxSteps-1 {
		ex.g.mem.setSuperstep(ex.g.superstep)

		if err = ctx.Err(); err != nil {
			break
		} else if err = cbs.PreStep(ctx, ex.g); err != nil {
			break
		} else if activeInStep, err = ex.g.step(); err != nil {
			break
		} else if err = cbs.PostStep(ctx, ex.g, activeInStep); err != nil {
			break
		} else if shouldRun, err = cbs.ShouldRunAnotherStep(ctx, ex.g, activeInStep); !shouldRun || err != nil {
			break
		}
	}

	return err
}
