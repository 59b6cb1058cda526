package core

import (
	"context"
	"time"

	"github.com/hupe1980/qmesh/logging"
)

// RunContext carries execution state and helpers for one agent's run.
// It aggregates:
//   - The ambient cancellation Context
//   - Identifiers (RunID, Agent info)
//   - The simulation's shared Rand
//   - The shared ResultStore for output publication and progress
//   - The receive timeout applied to blocking channel receives
//
// A RunContext is created by the orchestrator, one per agent, and must not
// be shared between agents: Publish and Progress are keyed by the owning
// agent's name.
type RunContext struct {
	Context     context.Context
	RunID       string
	Agent       AgentInfo
	Rand        *Rand
	Results     ResultStore
	RecvTimeout time.Duration
	Logger      logging.Logger
}

// NewRunContext constructs a RunContext for the given agent.
func NewRunContext(
	ctx context.Context,
	runID string,
	agent AgentInfo,
	rng *Rand,
	results ResultStore,
	recvTimeout time.Duration,
	logger logging.Logger,
) *RunContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &RunContext{
		Context:     ctx,
		RunID:       runID,
		Agent:       agent,
		Rand:        rng,
		Results:     results,
		RecvTimeout: recvTimeout,
		Logger:      logger,
	}
}

// Publish writes the owning agent's final output into the results mapping.
// It fails with ErrAlreadyPublished on a second call.
func (rc *RunContext) Publish(value any) error {
	return rc.Results.Publish(rc.Agent.Name, value)
}

// Progress records how many stream items the owning agent has consumed so
// far. The orchestrator's progress monitor reads these counters.
func (rc *RunContext) Progress(consumed int) {
	rc.Results.SetProgress(rc.Agent.Name, consumed)
}
