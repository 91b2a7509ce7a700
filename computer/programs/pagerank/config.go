package pagerank

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Config defines the PageRank program options.
type Config struct {
	// The probability that a random surfer follows an out edge rather
	// than jumping to a random vertex. If not specified, a default value
	// of 0.85 will be used instead.
	DampingFactor float64

	// The run stops once the sum of absolute score differences between
	// two supersteps drops below this value. If not specified, a default
	// value of 0.001 will be used instead.
	MinSADForConvergence float64

	// Only edges with these labels are followed. All edges are followed
	// when empty.
	EdgeLabels []string

	// The vertex property the final scores are written to. If not
	// specified, "pageRank" will be used instead.
	ComputeKey string
}

func (cfg *Config) validate() error {
	var err error

	if cfg.DampingFactor == 0 {
		cfg.DampingFactor = 0.85
	} else if cfg.DampingFactor < 0 || cfg.DampingFactor >= 1 {
		err = multierror.Append(err, fmt.Errorf("invalid value for damping factor, must be in [0, 1)"))
	}

	if cfg.MinSADForConvergence == 0 {
		cfg.MinSADForConvergence = 0.001
	} else if cfg.MinSADForConvergence < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for min SAD for convergence, must be > 0"))
	}

	if cfg.ComputeKey == "" {
		cfg.ComputeKey = "pageRank"
	}

	return err
}
