package noise

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qsystem"
)

// RandomUnitaryError rotates each qubit about the X and Z axes by angles
// drawn independently per item from a Gaussian with the configured sigma.
type RandomUnitaryError struct {
	sigma float64
}

// NewRandomUnitaryError constructs the stage with the given angle sigma in
// radians.
func NewRandomUnitaryError(sigma float64) (*RandomUnitaryError, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("noise: sigma %v must be non-negative", sigma)
	}
	return &RandomUnitaryError{sigma: sigma}, nil
}

// Apply rotates the qubit by freshly sampled angles.
func (r *RandomUnitaryError) Apply(rng *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error) {
	if q == nil {
		return nil, nil
	}
	dist := distuv.Normal{Mu: 0, Sigma: r.sigma, Src: rng}
	q.Apply(qsystem.RXGate(dist.Rand()))
	q.Apply(qsystem.RZGate(dist.Rand()))
	return q, nil
}

// SystematicUnitaryError applies the same fixed unitary to every qubit
// passing through the channel.
type SystematicUnitaryError struct {
	op qsystem.Unitary
}

// NewSystematicUnitaryError constructs the stage from an explicit unitary.
func NewSystematicUnitaryError(op qsystem.Unitary) *SystematicUnitaryError {
	return &SystematicUnitaryError{op: op}
}

// NewSampledSystematicUnitaryError samples the fixed unitary once at
// construction as RZ(z)·RX(x) with x, z ~ Normal(0, sigma).
func NewSampledSystematicUnitaryError(sigma float64, rng *core.Rand) (*SystematicUnitaryError, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("noise: sigma %v must be non-negative", sigma)
	}
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
	op := qsystem.RZGate(dist.Rand()).Mul(qsystem.RXGate(dist.Rand()))
	return &SystematicUnitaryError{op: op}, nil
}

// Apply applies the fixed unitary.
func (s *SystematicUnitaryError) Apply(_ *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error) {
	if q == nil {
		return nil, nil
	}
	q.Apply(s.op)
	return q, nil
}
