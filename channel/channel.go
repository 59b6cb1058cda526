// Package channel implements the conduits connecting exactly one sending
// agent to one receiving agent. Two kinds exist: quantum channels carry
// qubit handles through an ordered pipeline of noise stages, classical
// channels carry plain values exactly. Both are FIFO with blocking,
// timeout-guarded receives so an unsatisfiable protocol surfaces as an error
// instead of a silent hang.
package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/noise"
	"github.com/hupe1980/qmesh/qsystem"
)

// DefaultBufferSize is the in-flight item capacity of a channel. A send
// blocks once the buffer is full.
const DefaultBufferSize = 128

var (
	// ErrRecvTimeout is returned when a blocking receive outlives its
	// timeout. It indicates a protocol violation: the peer terminated, or
	// will never send enough items.
	ErrRecvTimeout = errors.New("receive timed out")
)

// Options holds construction overrides for a channel.
type Options struct {
	// BufferSize caps the number of undelivered items.
	BufferSize int
	// Stages is the ordered error pipeline run on every quantum send.
	// Ignored by classical channels. Stages hold per-channel mutable state
	// and must not be shared between channels.
	Stages []noise.Stage
}

// fifo is the shared buffered conduit under both channel kinds.
type fifo[T any] struct {
	from, to string
	kind     string
	items    chan T
}

func newFIFO[T any](from, to, kind string, size int) fifo[T] {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return fifo[T]{from: from, to: to, kind: kind, items: make(chan T, size)}
}

func (f *fifo[T]) send(ctx context.Context, item T) error {
	select {
	case f.items <- item:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s channel %s->%s: send: %w", f.kind, f.from, f.to, ctx.Err())
	}
}

func (f *fifo[T]) receive(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case item := <-f.items:
		return item, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%s channel %s->%s: receive: %w", f.kind, f.from, f.to, ctx.Err())
	case <-deadline:
		return zero, fmt.Errorf("%s channel %s->%s: receive after %s: %w", f.kind, f.from, f.to, timeout, ErrRecvTimeout)
	}
}

// Quantum is a directed point-to-point conduit for qubit handles. Every send
// runs the channel's noise stages left to right before the (possibly
// mutated, possibly dropped) handle is enqueued; dropped handles are
// delivered to the receiver as nil.
type Quantum struct {
	fifo[*qsystem.Qubit]
	stages []noise.Stage
}

// NewQuantum constructs a quantum channel from the named sender to the named
// receiver.
func NewQuantum(from, to string, optFns ...func(o *Options)) *Quantum {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Quantum{
		fifo:   newFIFO[*qsystem.Qubit](from, to, "quantum", opts.BufferSize),
		stages: opts.Stages,
	}
}

// From returns the sending agent's name.
func (c *Quantum) From() string { return c.from }

// To returns the receiving agent's name.
func (c *Quantum) To() string { return c.to }

// Send runs the error pipeline on q and enqueues the result for the
// receiver. rng is the sending agent's randomness source, used by stages for
// corruption draws. Sending transfers logical ownership of the qubit; the
// caller must not touch it afterwards.
func (c *Quantum) Send(ctx context.Context, rng *core.Rand, q *qsystem.Qubit) error {
	var err error
	for _, stage := range c.stages {
		q, err = stage.Apply(rng, q)
		if err != nil {
			return fmt.Errorf("quantum channel %s->%s: stage: %w", c.from, c.to, err)
		}
	}
	return c.send(ctx, q)
}

// Receive blocks until an item is available and dequeues it FIFO. A nil
// handle means the qubit was dropped in transit. A timeout greater than zero
// bounds the wait and converts a permanently blocked receive into
// ErrRecvTimeout.
func (c *Quantum) Receive(ctx context.Context, timeout time.Duration) (*qsystem.Qubit, error) {
	return c.receive(ctx, timeout)
}

// Classical is a directed point-to-point conduit for exact classical values
// such as measurement bits and outcome tuples. No error pipeline applies.
type Classical struct {
	fifo[any]
}

// NewClassical constructs a classical channel from the named sender to the
// named receiver.
func NewClassical(from, to string, optFns ...func(o *Options)) *Classical {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classical{fifo: newFIFO[any](from, to, "classical", opts.BufferSize)}
}

// From returns the sending agent's name.
func (c *Classical) From() string { return c.from }

// To returns the receiving agent's name.
func (c *Classical) To() string { return c.to }

// Send enqueues a value for the receiver, blocking while the buffer is full.
func (c *Classical) Send(ctx context.Context, value any) error {
	return c.send(ctx, value)
}

// Receive blocks until a value is available and dequeues it FIFO, observing
// the same timeout contract as Quantum.Receive.
func (c *Classical) Receive(ctx context.Context, timeout time.Duration) (any, error) {
	return c.receive(ctx, timeout)
}
