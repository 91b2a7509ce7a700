package computer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mycok/uGraph/computer/aggregator"
)

// Memory is the global memory of a compute run. Vertex programs fold
// values into it while a superstep runs; reads return the values
// committed at the end of the previous superstep, so every vertex of a
// superstep observes the same memory regardless of isolation.
type Memory struct {
	mu          sync.RWMutex
	combiner    aggregator.Combiner
	aggregators map[string]aggregator.Aggregator
	committed   map[string]interface{}
	superstep   int
}

func newMemory(combiner aggregator.Combiner) *Memory {
	return &Memory{
		combiner:    combiner,
		aggregators: make(map[string]aggregator.Aggregator),
		committed:   make(map[string]interface{}),
	}
}

// Register associates key with an aggregator. It is meant to be called
// from VertexProgram.Setup.
func (m *Memory) Register(key string, aggr aggregator.Aggregator) {
	m.mu.Lock()
	m.aggregators[key] = aggr
	m.mu.Unlock()
}

// Set replaces the value aggregated under key from the next superstep on.
// Get keeps returning the committed value until the next barrier, except
// before the first superstep where Set also seeds the committed value.
func (m *Memory) Set(key string, value interface{}) {
	aggr := m.aggregatorFor(key)
	if aggr == nil {
		m.mu.Lock()
		if aggr = m.aggregators[key]; aggr == nil {
			aggr = aggregator.NewCombining(m.combiner)
			m.aggregators[key] = aggr
		}
		m.mu.Unlock()
	}

	aggr.Set(value)
}

// Get returns the value committed under key at the last barrier.
func (m *Memory) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, exists := m.committed[key]

	return val, exists
}

// Float64 returns the committed float64 under key, 0 when absent.
func (m *Memory) Float64(key string) float64 {
	val, _ := m.Get(key)
	f, _ := val.(float64)

	return f
}

// Int64 returns the committed int64 under key, 0 when absent.
func (m *Memory) Int64(key string) int64 {
	val, _ := m.Get(key)
	n, _ := val.(int64)

	return n
}

// Aggregate folds value into key. Keys without a registered aggregator
// use the run's combiner.
func (m *Memory) Aggregate(key string, value interface{}) error {
	aggr := m.aggregatorFor(key)
	if aggr == nil {
		if m.combiner == nil {
			return fmt.Errorf("aggregate %q: %w", key, ErrUnknownMemoryKey)
		}

		m.mu.Lock()
		if aggr = m.aggregators[key]; aggr == nil {
			aggr = aggregator.NewCombining(m.combiner)
			m.aggregators[key] = aggr
		}
		m.mu.Unlock()
	}

	aggr.Aggregate(value)

	return nil
}

// Superstep returns the number of the superstep being executed, or of
// the superstep that was just committed when called from Terminate.
func (m *Memory) Superstep() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.superstep
}

// Keys returns the sorted committed keys.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.committed))
	for key := range m.committed {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Snapshot returns a copy of the committed values.
func (m *Memory) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]interface{}, len(m.committed))
	for key, val := range m.committed {
		snapshot[key] = val
	}

	return snapshot
}

func (m *Memory) aggregatorFor(key string) aggregator.Aggregator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.aggregators[key]
}

// commit publishes the aggregated values. It runs between supersteps
// while no vertex program executes.
func (m *Memory) commit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, aggr := range m.aggregators {
		if val := aggr.Get(); val != nil {
			m.committed[key] = val
		}
	}
}

func (m *Memory) setSuperstep(step int) {
	m.mu.Lock()
	m.superstep = step
	m.mu.Unlock()
}
