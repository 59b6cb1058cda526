package noise

import (
	"fmt"
	"math"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/qsystem"
)

// DefaultAttenuationCoefficient is the fiber attenuation in dB/km.
// From Yin et al., Satellite-based entanglement distribution.
const DefaultAttenuationCoefficient = -0.16

// AttenuationErrorOptions holds construction overrides for an
// AttenuationError.
type AttenuationErrorOptions struct {
	// Coefficient is the fiber attenuation in dB/km.
	Coefficient float64
}

// AttenuationError models the loss of a qubit along a fiber-optic channel.
// A lost qubit is measured (collapsing its register) and dropped from the
// channel, delivered downstream as an absent item.
type AttenuationError struct {
	attenuation float64
}

// NewAttenuationError constructs the stage for a fiber of the given length
// in kilometers.
func NewAttenuationError(lengthKm float64, optFns ...func(o *AttenuationErrorOptions)) (*AttenuationError, error) {
	if lengthKm < 0 {
		return nil, fmt.Errorf("noise: fiber length %v must be non-negative", lengthKm)
	}

	opts := AttenuationErrorOptions{Coefficient: DefaultAttenuationCoefficient}
	for _, fn := range optFns {
		fn(&opts)
	}

	decibelLoss := lengthKm * opts.Coefficient
	return &AttenuationError{attenuation: math.Pow(10, decibelLoss/10)}, nil
}

// Apply drops the qubit with probability 1-attenuation, collapsing its state
// first so the loss is physical.
func (a *AttenuationError) Apply(rng *core.Rand, q *qsystem.Qubit) (*qsystem.Qubit, error) {
	if q == nil {
		return nil, nil
	}
	if rng.Float64() > a.attenuation {
		if _, err := q.Measure(); err != nil {
			return nil, fmt.Errorf("noise: collapsing lost qubit: %w", err)
		}
		return nil, nil
	}
	return q, nil
}
