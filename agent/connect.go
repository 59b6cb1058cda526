package agent

import (
	"github.com/hupe1980/qmesh/channel"
	"github.com/hupe1980/qmesh/noise"
)

// ConnectOptions holds wiring overrides for a channel pair.
type ConnectOptions struct {
	// ForwardStages is the error pipeline of the a->b direction.
	ForwardStages []noise.Stage
	// ReverseStages is the error pipeline of the b->a direction. Stage
	// values must not be shared with ForwardStages; each channel owns its
	// stages' state.
	ReverseStages []noise.Stage
	// BufferSize caps undelivered items per direction.
	BufferSize int
}

// ConnectQuantum wires a pair of directed quantum channels between two
// agents, one per direction. Wiring happens before a simulation starts; it
// is not safe to call concurrently with a running simulation.
func ConnectQuantum(a, b *Agent, optFns ...func(o *ConnectOptions)) {
	opts := ConnectOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	forward := channel.NewQuantum(a.name, b.name, func(o *channel.Options) {
		o.Stages = opts.ForwardStages
		o.BufferSize = opts.BufferSize
	})
	reverse := channel.NewQuantum(b.name, a.name, func(o *channel.Options) {
		o.Stages = opts.ReverseStages
		o.BufferSize = opts.BufferSize
	})

	a.qout[b.name] = forward
	b.qin[a.name] = forward
	b.qout[a.name] = reverse
	a.qin[b.name] = reverse
}

// ConnectClassical wires a pair of directed classical channels between two
// agents, one per direction.
func ConnectClassical(a, b *Agent, optFns ...func(o *ConnectOptions)) {
	opts := ConnectOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	forward := channel.NewClassical(a.name, b.name, func(o *channel.Options) {
		o.BufferSize = opts.BufferSize
	})
	reverse := channel.NewClassical(b.name, a.name, func(o *channel.Options) {
		o.BufferSize = opts.BufferSize
	})

	a.cout[b.name] = forward
	b.cin[a.name] = forward
	b.cout[a.name] = reverse
	a.cin[b.name] = reverse
}
