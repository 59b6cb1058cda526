// Package qmesh provides a high-level façade over the simulation runner and
// its supporting packages (quantum registers, streams, channels and error
// models) enabling rapid construction of multi-agent quantum network
// simulations. Most applications interact with this package by:
//  1. Creating a QMesh via New() (optionally fixing the seed and logger)
//  2. Allocating quantum streams and wiring agents with channels
//  3. Running the agents to completion and reading their published outputs
//
// The façade delegates orchestration to runner.Simulation while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; reproducible experiments supply a fixed seed.
package qmesh

import (
	"context"
	"time"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/logging"
	"github.com/hupe1980/qmesh/qstream"
	"github.com/hupe1980/qmesh/runner"
)

// Options configures the QMesh instance.
type Options struct {
	// Seed fixes the shared randomness source, making runs reproducible.
	// Zero seeds from the wall clock.
	Seed uint64

	// RecvTimeout bounds every blocking channel receive. Zero disables
	// the bound.
	RecvTimeout time.Duration

	// ProgressInterval is the period of the progress monitor. Zero
	// disables progress reporting.
	ProgressInterval time.Duration

	// Results overrides the results mapping (defaults to an in-memory
	// implementation).
	Results core.ResultStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// QMesh is the high-level façade aggregating simulation configuration and the
// shared randomness source.
type QMesh struct {
	opts Options
	rng  *core.Rand
}

// New creates a new QMesh instance with optional overrides.
func New(optFns ...func(o *Options)) *QMesh {
	opts := Options{
		RecvTimeout: 5 * time.Second,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &QMesh{opts: opts, rng: core.NewRand(seed)}
}

// Rand returns the shared randomness source. Streams and noise stages
// participating in a run must be constructed from it.
func (m *QMesh) Rand() *core.Rand { return m.rng }

// NewStream allocates a quantum stream of numSystems registers of systemSize
// qubits each, lazily materialized and drawing on the shared source.
func (m *QMesh) NewStream(systemSize, numSystems int) (*qstream.QStream, error) {
	return qstream.New(systemSize, numSystems, m.rng, func(o *qstream.Options) {
		o.Logger = m.opts.Logger
	})
}

// Run executes the pre-wired agents to completion and returns the results
// mapping holding every agent's published output.
func (m *QMesh) Run(ctx context.Context, agents ...core.Agent) (core.ResultStore, error) {
	sim := runner.New(agents, func(o *runner.Options) {
		o.RecvTimeout = m.opts.RecvTimeout
		o.ProgressInterval = m.opts.ProgressInterval
		o.Rand = m.rng
		o.Logger = m.opts.Logger
		if m.opts.Results != nil {
			o.Results = m.opts.Results
		}
	})

	err := sim.Run(ctx)

	return sim.Results(), err
}
