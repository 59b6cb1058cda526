package core

import "errors"

var (
	// ErrAlreadyPublished is returned when an agent attempts to publish a
	// second output under the same name. Outputs are write-once.
	ErrAlreadyPublished = errors.New("agent output already published")
)

// ResultStore is the shared results mapping of a simulation run. Each agent
// publishes exactly one output under its own name; progress counters are
// updated freely while a run is in flight. Implementations must be safe for
// concurrent use.
type ResultStore interface {
	// Publish records an agent's final output. A second publish under the
	// same name fails with ErrAlreadyPublished.
	Publish(name string, value any) error
	// Get returns a published output, reporting whether one exists.
	Get(name string) (any, bool)
	// SetProgress records how many stream items the named agent has consumed.
	SetProgress(name string, consumed int)
	// Progress returns the last recorded progress for the named agent.
	Progress(name string) int
	// Snapshot returns a copy of all published outputs keyed by agent name.
	Snapshot() map[string]any
}
