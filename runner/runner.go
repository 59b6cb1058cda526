package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/logging"
	"github.com/hupe1980/qmesh/results"
)

var (
	// ErrNoAgents is returned when a simulation is run without agents.
	ErrNoAgents = errors.New("simulation has no agents")

	// ErrStreamMismatch is returned when agents that should iterate
	// parallel streams disagree on register count or register size. It
	// signals a wiring error, e.g. non-matching stream copies.
	ErrStreamMismatch = errors.New("agent streams disagree on register count or size")
)

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// RecvTimeout bounds every blocking channel receive, converting an
	// unsatisfiable protocol (deadlock) into a reported error. Zero
	// disables the bound.
	RecvTimeout time.Duration
	// ProgressInterval is the period of the progress monitor. Zero
	// disables progress reporting.
	ProgressInterval time.Duration
	// Rand is the shared randomness source for the run. Streams and noise
	// stages participating in the simulation must be constructed from the
	// same source. Nil seeds a fresh source from the wall clock.
	Rand *core.Rand
	// Results overrides the results mapping implementation.
	Results core.ResultStore
	// Logger receives lifecycle and progress records.
	Logger logging.Logger
}

// Simulation starts a set of pre-wired agents as independently scheduled
// goroutines and waits for all of them to finish. Public methods are safe
// for concurrent use, but a Simulation must only be run once.
type Simulation struct {
	agents []core.Agent

	recvTimeout      time.Duration
	progressInterval time.Duration
	rng              *core.Rand
	store            core.ResultStore
	logger           logging.Logger
}

// New constructs a Simulation over agents whose channels are already wired.
func New(agents []core.Agent, optFns ...func(o *Options)) *Simulation {
	opts := Options{
		RecvTimeout: 5 * time.Second,
		Results:     results.NewInMemoryStore(),
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	rng := opts.Rand
	if rng == nil {
		rng = core.NewRand(uint64(time.Now().UnixNano()))
	}

	return &Simulation{
		agents:           agents,
		recvTimeout:      opts.RecvTimeout,
		progressInterval: opts.ProgressInterval,
		rng:              rng,
		store:            opts.Results,
		logger:           opts.Logger,
	}
}

// Rand returns the simulation's shared randomness source. Streams and noise
// stages participating in the simulation should be constructed from it.
func (s *Simulation) Rand() *core.Rand { return s.rng }

// Results returns the shared results mapping. It is complete once Run has
// returned.
func (s *Simulation) Results() core.ResultStore { return s.store }

// Run starts all agents concurrently and blocks until every agent has
// finished. It returns the joined failures of all agents that terminated
// with an error or panic; a nil return means every agent ran to completion.
func (s *Simulation) Run(ctx context.Context) error {
	if len(s.agents) == 0 {
		return ErrNoAgents
	}
	if err := s.validateStreams(); err != nil {
		return err
	}

	runID := core.NewID()
	s.logger.Info("starting simulation", "run_id", runID, "agents", len(s.agents))

	done := make(chan struct{})
	var monitorWG sync.WaitGroup
	if s.progressInterval > 0 {
		monitorWG.Add(1)
		go func() {
			defer monitorWG.Done()
			s.monitorProgress(done)
		}()
	}

	var wg sync.WaitGroup
	errs := make([]error, len(s.agents))
	for i, a := range s.agents {
		wg.Add(1)
		go func(i int, a core.Agent) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("agent %s: panic: %v", a.Name(), r)
				}
			}()

			rc := core.NewRunContext(
				ctx, runID, core.AgentInfo{Name: a.Name()},
				s.rng, s.store, s.recvTimeout, s.logger,
			)
			s.logger.Debug("agent started", "run_id", runID, "agent", a.Name())
			if err := a.Run(rc); err != nil {
				errs[i] = fmt.Errorf("agent %s: %w", a.Name(), err)
				s.logger.Error("agent failed", "run_id", runID, "agent", a.Name(), "error", err)
				return
			}
			s.logger.Debug("agent finished", "run_id", runID, "agent", a.Name())
		}(i, a)
	}

	wg.Wait()
	close(done)
	monitorWG.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("simulation finished", "run_id", runID)
	return nil
}

// validateStreams checks that every stream-consuming agent iterates the same
// shape of stream. Diverging shapes make lockstep protocols unsatisfiable.
func (s *Simulation) validateStreams() error {
	systems, size := -1, -1
	for _, a := range s.agents {
		reporter, ok := a.(core.StreamReporter)
		if !ok {
			continue
		}
		n, sz, ok := reporter.StreamShape()
		if !ok {
			continue
		}
		if systems == -1 {
			systems, size = n, sz
			continue
		}
		if n != systems || sz != size {
			return fmt.Errorf(
				"agent %s iterates %dx%d-qubit registers, others %dx%d: %w",
				a.Name(), n, sz, systems, size, ErrStreamMismatch,
			)
		}
	}
	return nil
}

func (s *Simulation) monitorProgress(done <-chan struct{}) {
	ticker := time.NewTicker(s.progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			for _, a := range s.agents {
				s.logger.Info("progress", "agent", a.Name(), "consumed", s.store.Progress(a.Name()))
			}
		}
	}
}
