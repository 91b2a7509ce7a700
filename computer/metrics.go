package computer

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the computer's collectors. A nil *metrics records nothing.
type metrics struct {
	supersteps     prometheus.Counter
	executions     prometheus.Counter
	faults         prometheus.Counter
	activeVertices prometheus.Gauge
}

// newMetrics registers the computer's collectors on reg. Collectors that
// another computer already registered on reg are shared.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	supersteps, err := registerCounter(reg, "supersteps_total", "Supersteps executed by the graph computer.")
	if err != nil {
		return nil, err
	}

	executions, err := registerCounter(reg, "vertex_executions_total", "Vertex program executions.")
	if err != nil {
		return nil, err
	}

	faults, err := registerCounter(reg, "faults_total", "Vertex program executions that failed or panicked.")
	if err != nil {
		return nil, err
	}

	var active prometheus.Gauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ugraph",
		Subsystem: "computer",
		Name:      "active_vertices",
		Help:      "Vertices executed during the last superstep.",
	})

	existing, err := register(reg, active)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if active, err = asGauge(existing); err != nil {
			return nil, err
		}
	}

	return &metrics{
		supersteps:     supersteps,
		executions:     executions,
		faults:         faults,
		activeVertices: active,
	}, nil
}

func registerCounter(reg prometheus.Registerer, name, help string) (prometheus.Counter, error) {
	var counter prometheus.Counter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ugraph",
		Subsystem: "computer",
		Name:      name,
		Help:      help,
	})

	existing, err := register(reg, counter)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return counter, nil
	}

	shared, ok := existing.(prometheus.Counter)
	if !ok {
		return nil, fmt.Errorf("metric %s is registered with another type", name)
	}

	return shared, nil
}

// register returns the collector already registered under the same
// descriptor, or nil when c was registered.
func register(reg prometheus.Registerer, c prometheus.Collector) (prometheus.Collector, error) {
	err := reg.Register(c)
	if err == nil {
		return nil, nil
	}

	var alreadyErr prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyErr) {
		return alreadyErr.ExistingCollector, nil
	}

	return nil, fmt.Errorf("register computer metrics: %w", err)
}

func asGauge(c prometheus.Collector) (prometheus.Gauge, error) {
	gauge, ok := c.(prometheus.Gauge)
	if !ok {
		return nil, errors.New("metric active_vertices is registered with another type")
	}

	return gauge, nil
}

func (m *metrics) superstep(active int) {
	if m == nil {
		return
	}

	m.supersteps.Inc()
	m.activeVertices.Set(float64(active))
}

func (m *metrics) executed() {
	if m != nil {
		m.executions.Inc()
	}
}

func (m *metrics) fault() {
	if m != nil {
		m.faults.Inc()
	}
}
