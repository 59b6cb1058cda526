package agent

import (
	"errors"
	"fmt"

	"github.com/hupe1980/qmesh/channel"
	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qstream"
	"github.com/hupe1980/qmesh/qsystem"
)

var (
	// ErrUnknownPeer is returned when a send or receive names a peer no
	// channel was wired to. It indicates a wiring error.
	ErrUnknownPeer = errors.New("no channel to peer")

	// ErrNoLogic is returned when an agent without a RunFunc is started.
	ErrNoLogic = errors.New("agent has no protocol logic")
)

// RunFunc is the user-supplied protocol logic of an agent. It runs to
// completion on the agent's goroutine, pulling registers via a.Next,
// exchanging qubits and values with peers, and publishing at most one result
// via a.Output.
type RunFunc func(rc *core.RunContext, a *Agent) error

// Agent is an independently scheduled execution unit identified by name.
// Channels to peers are attached with ConnectQuantum / ConnectClassical
// before the simulation starts and are immutable afterwards.
type Agent struct {
	name   string
	stream *qstream.QStream
	cursor *qstream.Cursor
	logic  RunFunc

	qin  map[string]*channel.Quantum
	qout map[string]*channel.Quantum
	cin  map[string]*channel.Classical
	cout map[string]*channel.Classical
}

// New constructs an agent. stream may be nil for agents that only react to
// channel traffic.
func New(name string, stream *qstream.QStream, logic RunFunc) *Agent {
	a := &Agent{
		name:   name,
		stream: stream,
		logic:  logic,
		qin:    make(map[string]*channel.Quantum),
		qout:   make(map[string]*channel.Quantum),
		cin:    make(map[string]*channel.Classical),
		cout:   make(map[string]*channel.Classical),
	}
	if stream != nil {
		a.cursor = stream.Cursor()
	}
	return a
}

// Name returns the agent's identity, used as its results-mapping key.
func (a *Agent) Name() string { return a.name }

// StreamShape reports the register count and qubits-per-register of the
// agent's stream. ok is false when the agent has no stream.
func (a *Agent) StreamShape() (systems, systemSize int, ok bool) {
	if a.stream == nil {
		return 0, 0, false
	}
	return a.stream.Len(), a.stream.SystemSize(), true
}

// Run executes the agent's protocol logic. It satisfies core.Agent and is
// invoked by the orchestrator on a dedicated goroutine.
func (a *Agent) Run(rc *core.RunContext) error {
	if a.logic == nil {
		return fmt.Errorf("agent %s: %w", a.name, ErrNoLogic)
	}
	return a.logic(rc, a)
}

// Next pulls the agent's next register from its stream and records progress.
// Pulling past the end of the stream fails with qstream.ErrExhausted, which
// signals a wiring error between supposedly parallel streams.
func (a *Agent) Next(rc *core.RunContext) (*qsystem.QSystem, error) {
	if a.cursor == nil {
		return nil, fmt.Errorf("agent %s has no stream: %w", a.name, qstream.ErrExhausted)
	}
	sys, ok := a.cursor.Next()
	if !ok {
		return nil, fmt.Errorf("agent %s: %w", a.name, qstream.ErrExhausted)
	}
	rc.Progress(a.cursor.Consumed())
	return sys, nil
}

// Consumed returns how many registers the agent has pulled so far.
func (a *Agent) Consumed() int {
	if a.cursor == nil {
		return 0
	}
	return a.cursor.Consumed()
}

// QSend transmits a qubit handle to the named peer, running the channel's
// error pipeline. Ownership of the qubit moves to the peer; the caller must
// not touch it afterwards.
func (a *Agent) QSend(rc *core.RunContext, peer string, q *qsystem.Qubit) error {
	ch, ok := a.qout[peer]
	if !ok {
		return fmt.Errorf("agent %s: quantum send to %q: %w", a.name, peer, ErrUnknownPeer)
	}
	return ch.Send(rc.Context, rc.Rand, q)
}

// QRecv blocks until a qubit handle from the named peer is available. A nil
// handle means the qubit was dropped in transit. The RunContext's receive
// timeout bounds the wait.
func (a *Agent) QRecv(rc *core.RunContext, peer string) (*qsystem.Qubit, error) {
	ch, ok := a.qin[peer]
	if !ok {
		return nil, fmt.Errorf("agent %s: quantum receive from %q: %w", a.name, peer, ErrUnknownPeer)
	}
	return ch.Receive(rc.Context, rc.RecvTimeout)
}

// CSend transmits an exact classical value to the named peer.
func (a *Agent) CSend(rc *core.RunContext, peer string, value any) error {
	ch, ok := a.cout[peer]
	if !ok {
		return fmt.Errorf("agent %s: classical send to %q: %w", a.name, peer, ErrUnknownPeer)
	}
	return ch.Send(rc.Context, value)
}

// CRecv blocks until a classical value from the named peer is available,
// observing the RunContext's receive timeout.
func (a *Agent) CRecv(rc *core.RunContext, peer string) (any, error) {
	ch, ok := a.cin[peer]
	if !ok {
		return nil, fmt.Errorf("agent %s: classical receive from %q: %w", a.name, peer, ErrUnknownPeer)
	}
	return ch.Receive(rc.Context, rc.RecvTimeout)
}

// Output publishes the agent's final result into the shared results mapping
// under the agent's name. A second call fails with core.ErrAlreadyPublished.
func (a *Agent) Output(rc *core.RunContext, value any) error {
	return rc.Publish(value)
}
