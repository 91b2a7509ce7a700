package computer

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uGraph/computer/message"
)

// Config encapsulates the configuration options for a graph computer.
type Config struct {
	// Workers specifies the number of goroutines executing vertex
	// programs during each superstep. If not specified, a single worker
	// will be used.
	Workers int

	// MaxSupersteps bounds the number of supersteps of a run. A run that
	// reaches the bound stops without halting. Zero means unbounded.
	MaxSupersteps int

	// QueueFactory creates the message queues of every vertex. If not
	// specified, the in-memory queue will be used.
	QueueFactory message.Factory

	// Registerer receives the computer's metrics. Metrics are not
	// collected when it is nil.
	Registerer prometheus.Registerer

	// Clock measures run durations. If not specified, the wall clock
	// will be used.
	Clock clock.Clock

	// Logger to use. If not defined an output-discarding logger will be
	// used instead.
	Logger *logrus.Entry
}

// Validate checks whether the configuration is valid and sets the default
// values where required.
func (cfg *Config) Validate() error {
	var err error

	if cfg.Workers < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for workers, must be >= 0"))
	} else if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	if cfg.MaxSupersteps < 0 {
		err = multierror.Append(err, errors.New("invalid value for max supersteps, must be >= 0"))
	}

	if cfg.QueueFactory == nil {
		cfg.QueueFactory = message.NewInMemoryQueue
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
