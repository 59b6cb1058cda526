package noise

import (
	"fmt"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qsystem"
)

// GroupedErrorOptions holds construction overrides for a GroupedError.
type GroupedErrorOptions struct {
	// Corruption fixes the unitary applied on a corruption. When nil, a
	// fresh Haar-random unitary is drawn per corrupted group.
	Corruption *qsystem.Unitary
}

// GroupedError corrupts at most one qubit per consecutive group of K items
// with a single-qubit unitary. At every group boundary the stage decides
// with probability p whether this group is corrupted and, if so, picks a
// uniform position within the group to receive the unitary. The stage keeps
// a modulo-K item counter and the pending corruption position, both owned by
// the channel the stage is attached to. A corruption aimed at a dropped
// (absent) item is skipped.
type GroupedError struct {
	groupSize  int
	prob       float64
	corruption *qsystem.Unitary

	counter int
	target  int // position to corrupt this group; -1 when none
}

// NewGroupedError constructs the stage for groups of groupSize items with
// per-group corruption probability prob.
func NewGroupedError(groupSize int, prob float64, optFns ...func(o *GroupedErrorOptions)) (*GroupedError, error) {
	if groupSize < 1 {
		return nil, fmt.Errorf("noise: group size %d must be positive", groupSize)
	}
	if prob < 0 || prob > 1 {
		return nil, fmt.Errorf("noise: corruption probability %v outside [0, 1]", prob)
	}

	opts := GroupedErrorOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &GroupedError{groupSize: groupSize, prob: prob, corruption: opts.Corruption, target: -1}, nil
}

// Apply advances the group counter and, at most once per group, corrupts the
// qubit in place. A nil qubit still advances the counter.
func (g *GroupedError) Apply(rng *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error) {
	if g.counter == 0 {
		g.target = -1
		if rng.Float64() < g.prob {
			g.target = rng.IntN(g.groupSize)
		}
	}
	position := g.counter
	g.counter = (g.counter + 1) % g.groupSize

	if q == nil || position != g.target {
		return q, nil
	}

	if g.corruption != nil {
		q.Apply(*g.corruption)
	} else {
		q.Apply(qsystem.RandomUnitary(rng))
	}
	g.target = -1
	return q, nil
}
