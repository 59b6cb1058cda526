// Package results provides the shared results mapping of a simulation run.
package results

import (
	"fmt"
	"sync"

	"github.com/hupe1980/qmesh/core"
)

// InMemoryStore is a volatile core.ResultStore implementation keeping
// outputs in a process-local map. It is safe for concurrent access. Outputs
// are write-once per agent; progress counters may be updated freely.
type InMemoryStore struct {
	mu       sync.RWMutex
	outputs  map[string]any
	progress map[string]int
}

// NewInMemoryStore constructs an empty in-memory result store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		outputs:  make(map[string]any),
		progress: make(map[string]int),
	}
}

// Publish records an agent's final output. A second publish under the same
// name fails with core.ErrAlreadyPublished.
func (s *InMemoryStore) Publish(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.outputs[name]; exists {
		return fmt.Errorf("agent %q: %w", name, core.ErrAlreadyPublished)
	}
	s.outputs[name] = value
	return nil
}

// Get returns a published output, reporting whether one exists.
func (s *InMemoryStore) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.outputs[name]
	return v, ok
}

// SetProgress records how many stream items the named agent has consumed.
func (s *InMemoryStore) SetProgress(name string, consumed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[name] = consumed
}

// Progress returns the last recorded progress for the named agent.
func (s *InMemoryStore) Progress(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress[name]
}

// Snapshot returns a copy of all published outputs keyed by agent name.
func (s *InMemoryStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.outputs))
	for k, v := range s.outputs {
		out[k] = v
	}
	return out
}
