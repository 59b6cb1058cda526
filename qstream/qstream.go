// Package qstream implements the stream source: an ordered, finite sequence
// of freshly initialized registers consumed by one or more agents in
// lockstep. Allocating the registers up front keeps per-trial setup out of
// the protocol hot path and guarantees every consumer observes the same
// trial order.
package qstream

import (
	"errors"
	"fmt"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/logging"
	"github.com/hupe1980/qmesh/qsystem"
)

var (
	// ErrExhausted is returned when a consumer pulls past the end of the
	// stream.
	ErrExhausted = errors.New("register stream exhausted")
)

// Options holds construction overrides for a QStream.
type Options struct {
	// Logger is handed to every register for numeric-drift diagnostics.
	Logger logging.Logger
}

// QStream is an ordered sequence of registers, each pre-populated with
// systemSize fresh qubits in |0...0⟩. Agents acting on the same experimental
// trials must iterate the identical QStream (each through its own Cursor) or
// a deep Copy of it.
type QStream struct {
	systems    []*qsystem.QSystem
	systemSize int
	rng        *core.Rand
	logger     logging.Logger
}

// New constructs a stream of numSystems registers of systemSize qubits each.
// The rng is the simulation's shared randomness source.
func New(systemSize, numSystems int, rng *core.Rand, optFns ...func(o *Options)) (*QStream, error) {
	if systemSize < 1 {
		return nil, fmt.Errorf("qstream: system size %d must be positive", systemSize)
	}
	if numSystems < 1 {
		return nil, fmt.Errorf("qstream: system count %d must be positive", numSystems)
	}

	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	systems := make([]*qsystem.QSystem, numSystems)
	for i := range systems {
		systems[i] = qsystem.NewQSystem(systemSize, rng, func(o *qsystem.Options) {
			o.Logger = opts.Logger
		})
	}
	return &QStream{systems: systems, systemSize: systemSize, rng: rng, logger: opts.Logger}, nil
}

// Len returns the number of registers in the stream.
func (s *QStream) Len() int { return len(s.systems) }

// SystemSize returns the qubit count of each register.
func (s *QStream) SystemSize() int { return s.systemSize }

// System returns the i-th register. It panics on an out-of-range index; that
// is a programming error, not a runtime condition.
func (s *QStream) System(i int) *qsystem.QSystem {
	if i < 0 || i >= len(s.systems) {
		panic(fmt.Errorf("qstream: system %d of %d", i, len(s.systems)))
	}
	return s.systems[i]
}

// Copy returns a deep, fully independent copy of the stream: same shape and
// register states, backed by freshly allocated state vectors sharing the
// original's randomness source. Use it to run a second, uncorrelated
// protocol pass over "the same" inputs.
func (s *QStream) Copy() *QStream {
	systems := make([]*qsystem.QSystem, len(s.systems))
	for i, sys := range s.systems {
		systems[i] = sys.Clone()
	}
	return &QStream{systems: systems, systemSize: s.systemSize, rng: s.rng, logger: s.logger}
}

// Cursor returns an independent sequential consumer positioned at the start
// of the stream. A Cursor is not safe for concurrent use; each consumer must
// hold its own.
func (s *QStream) Cursor() *Cursor {
	return &Cursor{stream: s}
}

// Cursor is a single-consumer iterator over a QStream. Iteration consumes
// positions sequentially.
type Cursor struct {
	stream *QStream
	next   int
}

// Next returns the next register, reporting false once the stream is
// exhausted.
func (c *Cursor) Next() (*qsystem.QSystem, bool) {
	if c.next >= len(c.stream.systems) {
		return nil, false
	}
	sys := c.stream.systems[c.next]
	c.next++
	return sys, true
}

// Consumed returns how many registers the cursor has yielded so far.
func (c *Cursor) Consumed() int { return c.next }

// Stream returns the underlying QStream.
func (c *Cursor) Stream() *QStream { return c.stream }
