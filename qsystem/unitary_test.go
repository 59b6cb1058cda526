package qsystem

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qmesh/core"
)

func TestPredefinedGates_AreUnitary(t *testing.T) {
	for name, u := range map[string]Unitary{
		"I": GateI, "H": GateH, "X": GateX, "Y": GateY, "Z": GateZ,
	} {
		assert.Truef(t, u.IsUnitary(1e-9), "gate %s is not unitary", name)
	}
}

func TestRotationGates_AreUnitary(t *testing.T) {
	for _, theta := range []float64{0, math.Pi / 7, math.Pi / 2, math.Pi, 5.1} {
		assert.True(t, RXGate(theta).IsUnitary(1e-9))
		assert.True(t, RZGate(theta).IsUnitary(1e-9))
	}
}

func TestUnitary_Mul(t *testing.T) {
	// X·X = I and H·X·H = Z.
	assert.Equal(t, GateI, GateX.Mul(GateX))

	hxh := GateH.Mul(GateX).Mul(GateH)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 0, cmplx.Abs(hxh[i][j]-GateZ[i][j]), 1e-9)
		}
	}
}

func TestRandomUnitary(t *testing.T) {
	rng := core.NewRand(11)
	for i := 0; i < 100; i++ {
		u := RandomUnitary(rng)
		require.True(t, u.IsUnitary(1e-9))
	}
}

func TestRandomUnitary_SeedReproducible(t *testing.T) {
	a := RandomUnitary(core.NewRand(3))
	b := RandomUnitary(core.NewRand(3))
	assert.Equal(t, a, b)
}
