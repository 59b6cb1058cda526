package qsystem

import (
	"math"
	"math/cmplx"

	"github.com/hupe1980/qmesh/core"
)

// Unitary is a single-qubit operator in matrix form, row major.
type Unitary [2][2]complex128

// Common single-qubit gates.
var (
	// GateI is the identity.
	GateI = Unitary{{1, 0}, {0, 1}}
	// GateH is the Hadamard transform.
	GateH = Unitary{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	// GateX is the Pauli-X (bit flip).
	GateX = Unitary{{0, 1}, {1, 0}}
	// GateY is the Pauli-Y (bit and phase flip).
	GateY = Unitary{{0, -1i}, {1i, 0}}
	// GateZ is the Pauli-Z (phase flip).
	GateZ = Unitary{{1, 0}, {0, -1}}
)

// RXGate returns a rotation about the X axis by theta.
func RXGate(theta float64) Unitary {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Unitary{{c, s}, {s, c}}
}

// RZGate returns a rotation about the Z axis by theta.
func RZGate(theta float64) Unitary {
	return Unitary{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// Mul returns the matrix product u·v, i.e. the operator applying v first.
func (u Unitary) Mul(v Unitary) Unitary {
	var out Unitary
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = u[i][0]*v[0][j] + u[i][1]*v[1][j]
		}
	}
	return out
}

// IsUnitary reports whether u†u approximates the identity within tol.
func (u Unitary) IsUnitary(tol float64) bool {
	var id Unitary
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			id[i][j] = cmplx.Conj(u[0][i])*u[0][j] + cmplx.Conj(u[1][i])*u[1][j]
		}
	}
	return cmplx.Abs(id[0][0]-1) < tol && cmplx.Abs(id[1][1]-1) < tol &&
		cmplx.Abs(id[0][1]) < tol && cmplx.Abs(id[1][0]) < tol
}

// RandomUnitary samples a Haar-uniform 2x2 unitary from rng.
func RandomUnitary(rng *core.Rand) Unitary {
	alpha := 2 * math.Pi * rng.Float64()
	psi := 2 * math.Pi * rng.Float64()
	chi := 2 * math.Pi * rng.Float64()
	phi := math.Asin(math.Sqrt(rng.Float64()))

	c := math.Cos(phi)
	s := math.Sin(phi)
	g := cmplx.Exp(complex(0, alpha))
	return Unitary{
		{g * cmplx.Exp(complex(0, psi)) * complex(c, 0), g * cmplx.Exp(complex(0, chi)) * complex(s, 0)},
		{-g * cmplx.Exp(complex(0, -chi)) * complex(s, 0), g * cmplx.Exp(complex(0, -psi)) * complex(c, 0)},
	}
}
