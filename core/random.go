package core

import (
	"math/rand/v2"
	"sync"
)

// Rand is the shared randomness source of a simulation run. All measurement
// sampling and error-unitary sampling draws from a single Rand so that a run
// is fully reproducible under a fixed seed. It is safe for concurrent use by
// multiple agents; draws are serialized by a mutex.
//
// Rand implements rand.Source (via Uint64), so it can feed distribution
// samplers such as gonum's distuv directly.
type Rand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand constructs a seeded Rand backed by a PCG generator.
func NewRand(seed uint64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// IntN returns a uniform value in [0, n).
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

// NormFloat64 returns a standard-normally distributed value.
func (r *Rand) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.NormFloat64()
}

// Uint64 returns a uniform 64-bit value. It satisfies rand.Source.
func (r *Rand) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Uint64()
}
