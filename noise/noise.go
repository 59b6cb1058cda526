// Package noise implements stateful error-injection stages for quantum
// channels. A channel owns an ordered list of stages; each item sent runs
// through the stages left to right. Stages own their private mutable state
// (counters, flags) with any cadence reset handled internally, so the same
// stage value must never be shared between two channels.
//
// Every stage treats a nil qubit (an item dropped by an upstream stage) as a
// pass-through, so stages compose in any order.
package noise

import (
	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qsystem"
)

// Stage is a stateful transformation applied to qubits in transit. Apply may
// return the qubit unchanged, mutate its register through a unitary, or drop
// it by returning nil. rng is the sending agent's randomness source.
type Stage interface {
	Apply(rng *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error)
}

// StageFunc adapts a plain function to the Stage interface for stateless
// transformations.
type StageFunc func(rng *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error)

// Apply invokes the wrapped function.
func (f StageFunc) Apply(rng *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error) {
	return f(rng, q)
}
