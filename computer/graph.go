/*
	computer package implements the graph computer: a bulk synchronous
	parallel (BSP) engine running a vertex program over every vertex of a
	graph in synchronized supersteps. Vertices exchange messages delivered
	at the next superstep and fold values into a global memory committed at
	each barrier.
*/

package computer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/mycok/uGraph/computer/message"
	"github.com/mycok/uGraph/graph"
)

// Graph is the state of one compute run: a view of every vertex of the
// source graph plus the worker pool executing supersteps.
type Graph struct {
	source    graph.Graph
	program   VertexProgram
	isolation Isolation
	mem       *Memory
	metrics   *metrics

	superstep int
	vertices  map[string]*Vertex
	// order is the dispatch order, ascending by vertex id.
	order []*Vertex

	wg                sync.WaitGroup
	activeInStep      int64
	pendingInStep     int64
	vertexChan        chan *Vertex
	stepCompletedChan chan struct{}

	errMu   sync.Mutex
	stepErr error
}

// newGraph loads every vertex of source and starts the worker pool. Close
// must be called once the run is over.
func newGraph(
	source graph.Graph, cfg Config, program VertexProgram,
	isolation Isolation, mem *Memory, m *metrics,
) (*Graph, error) {

	g := &Graph{
		source:    source,
		program:   program,
		isolation: isolation,
		mem:       mem,
		metrics:   m,
		vertices:  make(map[string]*Vertex),
	}

	it, err := source.Elements(graph.VertexKind)
	if err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}

	for it.Next() {
		sv, ok := it.Element().(graph.Vertex)
		if !ok {
			continue
		}

		initial := program.InitialValue(sv)
		v := &Vertex{
			id:        sv.ID(),
			label:     sv.Label(),
			source:    sv,
			g:         g,
			value:     initial,
			committed: initial,
			active:    true,
			msgQueues: [2]message.Queue{cfg.QueueFactory(), cfg.QueueFactory()},
		}

		g.vertices[v.id] = v
		g.order = append(g.order, v)
	}

	if err = it.Error(); err != nil {
		_ = it.Close()

		return nil, fmt.Errorf("load vertices: %w", err)
	}

	if err = it.Close(); err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}

	g.startWorkers(cfg.Workers)

	return g, nil
}

// Close stops the worker pool and releases the message queues.
func (g *Graph) Close() error {
	close(g.vertexChan)
	g.wg.Wait()

	var err error
	for _, v := range g.order {
		for i := 0; i < 2; i++ {
			if qErr := v.msgQueues[i].Close(); qErr != nil {
				err = multierror.Append(err, fmt.Errorf(
					"close message queue %d of vertex %q: %w", i, v.id, qErr,
				))
			}
		}
	}

	return err
}

// Superstep returns the number of the superstep being executed.
func (g *Graph) Superstep() int { return g.superstep }

// Isolation returns the isolation policy of the run.
func (g *Graph) Isolation() Isolation { return g.isolation }

// Memory returns the global memory of the run.
func (g *Graph) Memory() *Memory { return g.mem }

// NumVertices returns the number of vertices taking part in the run.
func (g *Graph) NumVertices() int { return len(g.order) }

// Vertex returns the run view of the vertex with the given id.
func (g *Graph) Vertex(id string) (*Vertex, bool) {
	v, exists := g.vertices[id]

	return v, exists
}

// Value returns the compute value of another vertex as allowed by the
// isolation policy.
func (g *Graph) Value(id string) (interface{}, error) {
	v, exists := g.vertices[id]
	if !exists {
		return nil, fmt.Errorf("value of vertex %q: %w", id, graph.ErrNotFound)
	}

	return v.observedValue(g.isolation), nil
}

// Property reads a property of any vertex from the graph. Under strict
// isolation the graph only holds writes committed at earlier barriers.
func (g *Graph) Property(id, key string) (interface{}, bool, error) {
	return g.source.Property(graph.VertexKind, id, key)
}

// SendMessage queues msg for delivery to the vertex destID at the next
// superstep.
func (g *Graph) SendMessage(destID string, msg message.Message) error {
	dest, exists := g.vertices[destID]
	if !exists {
		return fmt.Errorf("message can't be delivered to %q: %w", destID, ErrInvalidMessageDestination)
	}

	return dest.msgQueues[(g.superstep+1)%2].Enqueue(msg)
}

// BroadcastToNeighbors sends msg across every incident edge of v in the
// given direction, optionally restricted to edge labels. A vertex
// reached through several edges receives one message per edge.
func (g *Graph) BroadcastToNeighbors(v *Vertex, dir graph.Direction, msg message.Message, labels ...string) error {
	for _, e := range v.Edges(dir, labels...) {
		if err := g.SendMessage(otherEnd(e, v.id), msg); err != nil {
			return err
		}
	}

	return nil
}

// otherEnd returns the endpoint of e that is not id. Self-loops return id.
func otherEnd(e graph.Edge, id string) string {
	if out := e.OutVertex().ID(); out != id {
		return out
	}

	return e.InVertex().ID()
}

// step executes the current superstep and returns the number of vertices
// that were executed, either because they were still active or because
// they received a message.
func (g *Graph) step() (int, error) {
	g.activeInStep = 0
	g.pendingInStep = int64(len(g.order))
	g.stepErr = nil

	if g.pendingInStep == 0 {
		return 0, nil
	}

	for _, v := range g.order {
		g.vertexChan <- v
	}

	// Block until the worker pool has processed every vertex.
	<-g.stepCompletedChan

	return int(g.activeInStep), g.stepErr
}

// commit applies the writes of a completed superstep.
func (g *Graph) commit() error {
	var err error
	for _, v := range g.order {
		if vErr := v.commit(g.source); vErr != nil {
			err = multierror.Append(err, vErr)
		}
	}

	g.mem.commit()

	if err != nil {
		return fmt.Errorf("%w: %w", ErrComputeFault, err)
	}

	return nil
}

// rollback discards the writes of a faulted superstep. Under dirty
// isolation property writes already reached the graph and persist.
func (g *Graph) rollback() {
	for _, v := range g.order {
		v.rollback()
	}
}

// pendingWork reports whether any vertex is active or has messages
// waiting for the next superstep.
func (g *Graph) pendingWork() bool {
	next := (g.superstep + 1) % 2
	for _, v := range g.order {
		if v.active || v.msgQueues[next].PendingMessages() {
			return true
		}
	}

	return false
}

// startWorkers spins up numOfWorkers goroutines executing each superstep.
func (g *Graph) startWorkers(numOfWorkers int) {
	g.vertexChan = make(chan *Vertex)
	g.stepCompletedChan = make(chan struct{})

	g.wg.Add(numOfWorkers)
	for i := 0; i < numOfWorkers; i++ {
		go g.stepWorker()
	}
}

// stepWorker polls the vertex channel and runs the vertex program on each
// vertex that is active or has messages. It exits when the vertex channel
// is closed.
func (g *Graph) stepWorker() {
	defer g.wg.Done()

	for v := range g.vertexChan {
		queue := v.msgQueues[g.superstep%2]
		if v.active || queue.PendingMessages() {
			_ = atomic.AddInt64(&g.activeInStep, 1)
			v.active = true

			if err := g.execute(v, queue.Messages()); err != nil {
				g.metrics.fault()
				g.recordErr(err)
			} else if err := queue.DiscardMessages(); err != nil {
				g.recordErr(fmt.Errorf("discard messages of vertex %q: %w", v.id, err))
			}

			g.metrics.executed()
		}

		// The worker processing the last vertex signals completion.
		if atomic.AddInt64(&g.pendingInStep, -1) == 0 {
			g.stepCompletedChan <- struct{}{}
		}
	}
}

// execute runs the program on v, turning errors and panics into compute
// faults.
func (g *Graph) execute(v *Vertex, msgs message.Iterator) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("vertex %q panicked: %v: %w", v.id, r, ErrComputeFault)
		}
	}()

	if err = g.program.Execute(g, v, msgs); err != nil {
		return fmt.Errorf("vertex %q: %w: %w", v.id, ErrComputeFault, err)
	}

	return nil
}

func (g *Graph) recordErr(err error) {
	g.errMu.Lock()
	g.stepErr = multierror.Append(g.stepErr, err)
	g.errMu.Unlock()
}
