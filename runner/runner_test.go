package runner

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qmesh/agent"
	"github.com/hupe1980/qmesh/channel"
	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qstream"
	"github.com/hupe1980/qmesh/qsystem"
)

// teleportSender runs the standard teleportation protocol: per register of
// [state, a, b], share the (a, b) Bell pair with the peer, entangle the
// state qubit, and send the two correction bits.
func teleportSender(peer string, prepare func(i int, q *qsystem.Qubit)) agent.RunFunc {
	return func(rc *core.RunContext, a *agent.Agent) error {
		for i := 0; ; i++ {
			sys, err := a.Next(rc)
			if err != nil {
				if errors.Is(err, qstream.ErrExhausted) {
					return nil
				}
				return err
			}

			q, ancilla, pair := sys.Qubit(0), sys.Qubit(1), sys.Qubit(2)
			prepare(i, q)

			qsystem.H(ancilla)
			if err := qsystem.CNOT(ancilla, pair); err != nil {
				return err
			}
			if err := a.QSend(rc, peer, pair); err != nil {
				return err
			}

			if err := qsystem.CNOT(q, ancilla); err != nil {
				return err
			}
			qsystem.H(q)
			doZ, err := q.Measure()
			if err != nil {
				return err
			}
			doX, err := ancilla.Measure()
			if err != nil {
				return err
			}
			if err := a.CSend(rc, peer, [2]int{doX, doZ}); err != nil {
				return err
			}
		}
	}
}

// teleportReceiver applies the corrections and measures the teleported
// qubit, publishing all outcomes.
func teleportReceiver(peer string) agent.RunFunc {
	return func(rc *core.RunContext, a *agent.Agent) error {
		trials, _, ok := a.StreamShape()
		if !ok {
			return errors.New("receiver needs the shared stream for its trial count")
		}

		outcomes := make([]int, 0, trials)
		for i := 0; i < trials; i++ {
			q, err := a.QRecv(rc, peer)
			if err != nil {
				return err
			}
			v, err := a.CRecv(rc, peer)
			if err != nil {
				return err
			}
			corrections := v.([2]int)

			if q == nil {
				outcomes = append(outcomes, -1)
				continue
			}
			if corrections[0] == 1 {
				qsystem.X(q)
			}
			if corrections[1] == 1 {
				qsystem.Z(q)
			}
			bit, err := q.Measure()
			if err != nil {
				return err
			}
			outcomes = append(outcomes, bit)
		}
		return a.Output(rc, outcomes)
	}
}

func TestSimulation_NoAgents(t *testing.T) {
	sim := New(nil)
	require.ErrorIs(t, sim.Run(context.Background()), ErrNoAgents)
}

func TestSimulation_Teleportation_BasisStates(t *testing.T) {
	states := []int{1, 0, 1, 1, 0, 0, 1, 0}

	rng := core.NewRand(42)
	stream, err := qstream.New(3, len(states), rng)
	require.NoError(t, err)

	alice := agent.New("alice", stream, teleportSender("bob", func(i int, q *qsystem.Qubit) {
		if states[i] == 1 {
			qsystem.X(q)
		}
	}))
	bob := agent.New("bob", stream, teleportReceiver("alice"))
	agent.ConnectQuantum(alice, bob)
	agent.ConnectClassical(alice, bob)

	sim := New([]core.Agent{alice, bob}, func(o *Options) {
		o.Rand = rng
		o.RecvTimeout = 2 * time.Second
	})
	require.NoError(t, sim.Run(context.Background()))

	out, ok := sim.Results().Get("bob")
	require.True(t, ok)
	assert.Equal(t, states, out)
}

func TestSimulation_Teleportation_RotationStatistics(t *testing.T) {
	const trials = 2000
	theta := math.Pi / 4

	rng := core.NewRand(7)
	stream, err := qstream.New(3, trials, rng)
	require.NoError(t, err)

	alice := agent.New("alice", stream, teleportSender("bob", func(_ int, q *qsystem.Qubit) {
		qsystem.RX(q, theta)
	}))
	bob := agent.New("bob", stream, teleportReceiver("alice"))
	agent.ConnectQuantum(alice, bob)
	agent.ConnectClassical(alice, bob)

	sim := New([]core.Agent{alice, bob}, func(o *Options) {
		o.Rand = rng
		o.RecvTimeout = 5 * time.Second
	})
	require.NoError(t, sim.Run(context.Background()))

	out, ok := sim.Results().Get("bob")
	require.True(t, ok)
	outcomes := out.([]int)
	require.Len(t, outcomes, trials)

	ones := 0
	for _, bit := range outcomes {
		require.GreaterOrEqual(t, bit, 0)
		ones += bit
	}
	want := math.Pow(math.Sin(theta/2), 2)
	assert.InDelta(t, want, float64(ones)/trials, 0.03)
}

func TestSimulation_DeadlockDetected(t *testing.T) {
	alice := agent.New("alice", nil, func(_ *core.RunContext, _ *agent.Agent) error {
		return nil // terminates without sending anything
	})
	bob := agent.New("bob", nil, func(rc *core.RunContext, a *agent.Agent) error {
		_, err := a.QRecv(rc, "alice")
		return err
	})
	agent.ConnectQuantum(alice, bob)

	sim := New([]core.Agent{alice, bob}, func(o *Options) {
		o.RecvTimeout = 50 * time.Millisecond
	})

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, channel.ErrRecvTimeout)
	assert.Contains(t, err.Error(), "agent bob")
	assert.Contains(t, err.Error(), "alice->bob")
}

func TestSimulation_StreamMismatch(t *testing.T) {
	rng := core.NewRand(1)

	streamA, err := qstream.New(2, 5, rng)
	require.NoError(t, err)
	streamB, err := qstream.New(2, 4, rng)
	require.NoError(t, err)

	noop := func(_ *core.RunContext, _ *agent.Agent) error { return nil }
	sim := New([]core.Agent{
		agent.New("alice", streamA, noop),
		agent.New("bob", streamB, noop),
	}, func(o *Options) { o.Rand = rng })

	err = sim.Run(context.Background())
	require.ErrorIs(t, err, ErrStreamMismatch)
}

func TestSimulation_PanicRecovered(t *testing.T) {
	boom := agent.New("boom", nil, func(_ *core.RunContext, _ *agent.Agent) error {
		var sys *qsystem.QSystem
		sys.Qubit(0) // nil dereference
		return nil
	})
	ok := agent.New("ok", nil, func(rc *core.RunContext, a *agent.Agent) error {
		return a.Output(rc, "fine")
	})

	sim := New([]core.Agent{boom, ok})
	err := sim.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent boom: panic")

	// The healthy agent still completed and published.
	v, found := sim.Results().Get("ok")
	require.True(t, found)
	assert.Equal(t, "fine", v)
}

func TestSimulation_AgentErrorReported(t *testing.T) {
	failing := errors.New("protocol failed")
	a := agent.New("alice", nil, func(_ *core.RunContext, _ *agent.Agent) error {
		return failing
	})

	sim := New([]core.Agent{a})
	err := sim.Run(context.Background())
	require.ErrorIs(t, err, failing)
	assert.Contains(t, err.Error(), "agent alice")
}

func TestSimulation_ProgressRecorded(t *testing.T) {
	rng := core.NewRand(9)
	stream, err := qstream.New(1, 3, rng)
	require.NoError(t, err)

	a := agent.New("alice", stream, func(rc *core.RunContext, a *agent.Agent) error {
		for {
			if _, err := a.Next(rc); err != nil {
				return nil
			}
		}
	})

	sim := New([]core.Agent{a}, func(o *Options) { o.Rand = rng })
	require.NoError(t, sim.Run(context.Background()))
	assert.Equal(t, 3, sim.Results().Progress("alice"))
}
