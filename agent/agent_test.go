package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/logging"
	"github.com/hupe1980/qmesh/qstream"
	"github.com/hupe1980/qmesh/qsystem"
	"github.com/hupe1980/qmesh/results"
)

func newRunContext(t *testing.T, name string, rng *core.Rand, store core.ResultStore) *core.RunContext {
	t.Helper()
	if store == nil {
		store = results.NewInMemoryStore()
	}
	return core.NewRunContext(
		context.Background(), core.NewID(), core.AgentInfo{Name: name},
		rng, store, time.Second, logging.NoOpLogger{},
	)
}

func TestAgent_NextConsumesStream(t *testing.T) {
	rng := core.NewRand(1)
	stream, err := qstream.New(1, 2, rng)
	require.NoError(t, err)

	a := New("alice", stream, nil)
	store := results.NewInMemoryStore()
	rc := newRunContext(t, "alice", rng, store)

	sys, err := a.Next(rc)
	require.NoError(t, err)
	assert.Same(t, stream.System(0), sys)
	assert.Equal(t, 1, store.Progress("alice"))

	_, err = a.Next(rc)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Progress("alice"))

	_, err = a.Next(rc)
	require.ErrorIs(t, err, qstream.ErrExhausted)
}

func TestAgent_StreamShape(t *testing.T) {
	rng := core.NewRand(1)
	stream, err := qstream.New(3, 5, rng)
	require.NoError(t, err)

	a := New("alice", stream, nil)
	systems, size, ok := a.StreamShape()
	require.True(t, ok)
	assert.Equal(t, 5, systems)
	assert.Equal(t, 3, size)

	b := New("bob", nil, nil)
	_, _, ok = b.StreamShape()
	assert.False(t, ok)
}

func TestAgent_RunWithoutLogic(t *testing.T) {
	a := New("alice", nil, nil)
	err := a.Run(newRunContext(t, "alice", core.NewRand(1), nil))
	require.ErrorIs(t, err, ErrNoLogic)
}

func TestAgent_QuantumRoundTrip(t *testing.T) {
	rng := core.NewRand(2)
	alice := New("alice", nil, nil)
	bob := New("bob", nil, nil)
	ConnectQuantum(alice, bob)

	rcA := newRunContext(t, "alice", rng, nil)
	rcB := newRunContext(t, "bob", rng, nil)

	sys := qsystem.NewQSystem(1, rng)
	qsystem.X(sys.Qubit(0))
	require.NoError(t, alice.QSend(rcA, "bob", sys.Qubit(0)))

	q, err := bob.QRecv(rcB, "alice")
	require.NoError(t, err)
	bit, err := q.Measure()
	require.NoError(t, err)
	assert.Equal(t, 1, bit)
}

func TestAgent_ClassicalRoundTrip(t *testing.T) {
	rng := core.NewRand(3)
	alice := New("alice", nil, nil)
	bob := New("bob", nil, nil)
	ConnectClassical(alice, bob)

	rcA := newRunContext(t, "alice", rng, nil)
	rcB := newRunContext(t, "bob", rng, nil)

	require.NoError(t, alice.CSend(rcA, "bob", []int{1, 0}))
	require.NoError(t, bob.CSend(rcB, "alice", true))

	v, err := bob.CRecv(rcB, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, v)

	v, err = alice.CRecv(rcA, "bob")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestAgent_UnknownPeer(t *testing.T) {
	rng := core.NewRand(4)
	alice := New("alice", nil, nil)
	rc := newRunContext(t, "alice", rng, nil)

	err := alice.CSend(rc, "eve", 1)
	require.ErrorIs(t, err, ErrUnknownPeer)

	_, err = alice.QRecv(rc, "eve")
	require.ErrorIs(t, err, ErrUnknownPeer)
}

func TestAgent_OutputWriteOnce(t *testing.T) {
	rng := core.NewRand(5)
	store := results.NewInMemoryStore()
	alice := New("alice", nil, nil)
	rc := newRunContext(t, "alice", rng, store)

	require.NoError(t, alice.Output(rc, "done"))
	err := alice.Output(rc, "again")
	require.ErrorIs(t, err, core.ErrAlreadyPublished)

	v, ok := store.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "done", v)
}
