package qec

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qsystem"
)

// preparation describes a logical input state via the unitary that prepares
// it from |0⟩ and the unitary that takes it back.
type preparation struct {
	name   string
	prep   qsystem.Unitary
	unprep qsystem.Unitary
}

func preparations() []preparation {
	rx := qsystem.RXGate(1.1)
	rxInv := qsystem.RXGate(-1.1)
	return []preparation{
		{name: "zero", prep: qsystem.GateI, unprep: qsystem.GateI},
		{name: "one", prep: qsystem.GateX, unprep: qsystem.GateX},
		{name: "plus", prep: qsystem.GateH, unprep: qsystem.GateH},
		{name: "rotated", prep: rx, unprep: rxInv},
	}
}

// requireRecovered verifies the logical state of block[0] equals the state
// prepared by p, up to global phase: undoing the preparation must leave
// qubit 0 measuring 0 with certainty.
func requireRecovered(t *testing.T, sys *qsystem.QSystem, p preparation) {
	t.Helper()
	q := sys.Qubit(0)
	q.Apply(p.unprep)
	bit, err := q.Measure()
	require.NoError(t, err)
	require.Equal(t, 0, bit, "logical state not recovered")
}

func TestShor_RoundTripIsIdentity(t *testing.T) {
	for _, p := range preparations() {
		t.Run(p.name, func(t *testing.T) {
			rng := core.NewRand(1)
			sys := qsystem.NewQSystem(BlockSize, rng)
			sys.Qubit(0).Apply(p.prep)

			want := make([]complex128, len(sys.Amplitudes()))
			copy(want, sys.Amplitudes())

			require.NoError(t, Encode(sys.Qubits()))
			require.NoError(t, Decode(sys.Qubits()))

			got := sys.Amplitudes()
			for i := range want {
				assert.InDelta(t, 0, cmplx.Abs(got[i]-want[i]), 1e-9)
			}
		})
	}
}

func TestShor_RecoversFromAnySingleCorruption(t *testing.T) {
	rng := core.NewRand(2)

	corruptions := map[string]qsystem.Unitary{
		"identity": qsystem.GateI,
		"X":        qsystem.GateX,
		"Z":        qsystem.GateZ,
		"Y":        qsystem.GateY,
		"H":        qsystem.GateH,
	}
	for i := 0; i < 4; i++ {
		corruptions[fmt.Sprintf("random-%d", i)] = qsystem.RandomUnitary(rng)
	}

	for _, p := range preparations() {
		for name, u := range corruptions {
			for pos := 0; pos < BlockSize; pos++ {
				t.Run(fmt.Sprintf("%s/%s/qubit-%d", p.name, name, pos), func(t *testing.T) {
					sys := qsystem.NewQSystem(BlockSize, rng)
					sys.Qubit(0).Apply(p.prep)

					require.NoError(t, Encode(sys.Qubits()))
					sys.Qubit(pos).Apply(u)
					require.NoError(t, Decode(sys.Qubits()))

					requireRecovered(t, sys, p)
				})
			}
		}
	}
}

func TestShor_RotationStatisticsSurviveCoding(t *testing.T) {
	rng := core.NewRand(3)
	theta := math.Pi / 3

	const trials = 500
	ones := 0
	for i := 0; i < trials; i++ {
		sys := qsystem.NewQSystem(BlockSize, rng)
		qsystem.RX(sys.Qubit(0), theta)

		require.NoError(t, Encode(sys.Qubits()))
		sys.Qubit(4).Apply(qsystem.RandomUnitary(rng))
		require.NoError(t, Decode(sys.Qubits()))

		bit, err := sys.Qubit(0).Measure()
		require.NoError(t, err)
		ones += bit
	}

	want := math.Pow(math.Sin(theta/2), 2)
	assert.InDelta(t, want, float64(ones)/trials, 0.07)
}

func TestShor_BlockSizeValidation(t *testing.T) {
	rng := core.NewRand(4)
	sys := qsystem.NewQSystem(3, rng)

	assert.Error(t, Encode(sys.Qubits()))
	assert.Error(t, Decode(sys.Qubits()))
}
