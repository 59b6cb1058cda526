package qsystem

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/hupe1980/qmesh/core"
	"github.com/hupe1980/qmesh/logging"
)

// probTolerance bounds how far a computed measurement probability may drift
// outside [0, 1] before it is treated as an invariant violation instead of
// ordinary floating-point noise.
const probTolerance = 1e-6

// Options holds construction overrides for a QSystem.
type Options struct {
	// Logger receives debug records for probability clamping. Defaults to
	// the NoOpLogger.
	Logger logging.Logger
}

// QSystem is a register: it owns the dense state vector of a fixed-size
// group of qubits, initialized to |0...0⟩. The Hilbert-space dimension is
// fixed at construction. A QSystem is not safe for concurrent mutation; the
// channel hand-off discipline guarantees a single writer at any time.
type QSystem struct {
	state  []complex128
	n      int
	rng    *core.Rand
	logger logging.Logger
}

// NewQSystem constructs an n-qubit register in the |0...0⟩ state. The rng is
// the simulation's shared randomness source used for measurement draws.
func NewQSystem(n int, rng *core.Rand, optFns ...func(o *Options)) *QSystem {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	state := make([]complex128, 1<<n)
	state[0] = 1
	return &QSystem{state: state, n: n, rng: rng, logger: opts.Logger}
}

// NumQubits returns the register's qubit count.
func (s *QSystem) NumQubits() int { return s.n }

// Amplitudes returns the backing state vector. Callers must not mutate it
// outside gate application; it is exposed for inspection and tests.
func (s *QSystem) Amplitudes() []complex128 { return s.state }

// Qubit returns the handle for the i-th qubit. It panics with
// ErrIndexOutOfRange for an invalid index; that is a programming error in
// protocol logic, not a runtime condition.
func (s *QSystem) Qubit(i int) *Qubit {
	if i < 0 || i >= s.n {
		panic(fmt.Errorf("qubit %d of %d-qubit register: %w", i, s.n, ErrIndexOutOfRange))
	}
	return &Qubit{sys: s, index: i}
}

// Qubits returns handles for all qubits of the register in index order.
func (s *QSystem) Qubits() []*Qubit {
	qs := make([]*Qubit, s.n)
	for i := range qs {
		qs[i] = &Qubit{sys: s, index: i}
	}
	return qs
}

// Clone returns a deep, fully independent copy of the register sharing the
// same randomness source.
func (s *QSystem) Clone() *QSystem {
	state := make([]complex128, len(s.state))
	copy(state, s.state)
	return &QSystem{state: state, n: s.n, rng: s.rng, logger: s.logger}
}

// Normalize rescales the state vector to unit norm. It is re-applied after
// every measurement; callers applying explicitly non-unitary operators must
// invoke it themselves.
func (s *QSystem) Normalize() error {
	norm := cmplxs.Norm(s.state, 2)
	if norm < probTolerance {
		return fmt.Errorf("cannot normalize zero state: %w", ErrNormDrift)
	}
	cmplxs.Scale(complex(1/norm, 0), s.state)
	return nil
}

// bit returns the basis-label bit mask for qubit index k. Qubit 0 is the
// most significant bit.
func (s *QSystem) bit(k int) int { return 1 << (s.n - 1 - k) }

// applySingle applies a 2x2 unitary to qubit k by updating amplitude pairs
// that differ only in qubit k's bit.
func (s *QSystem) applySingle(u Unitary, k int) {
	bit := s.bit(k)
	for i := range s.state {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.state[i], s.state[j]
			s.state[i] = u[0][0]*a0 + u[0][1]*a1
			s.state[j] = u[1][0]*a0 + u[1][1]*a1
		}
	}
}

// measure performs a projective measurement of qubit k in the computational
// basis, collapsing and renormalizing the state.
func (s *QSystem) measure(k int) (int, error) {
	bit := s.bit(k)

	prob0 := 0.0
	for i, amp := range s.state {
		if i&bit == 0 {
			prob0 += real(amp)*real(amp) + imag(amp)*imag(amp)
		}
	}
	if prob0 < -probTolerance || prob0 > 1+probTolerance {
		return 0, fmt.Errorf("measurement probability %v for qubit %d: %w", prob0, k, ErrNormDrift)
	}
	if prob0 < 0 || prob0 > 1 {
		s.logger.Debug("clamping measurement probability", "qubit", k, "prob0", prob0)
		prob0 = min(max(prob0, 0), 1)
	}

	outcome := 0
	if s.rng.Float64() > prob0 {
		outcome = 1
	}

	// Project onto the observed outcome.
	for i := range s.state {
		observed := 0
		if i&bit != 0 {
			observed = 1
		}
		if observed != outcome {
			s.state[i] = 0
		}
	}
	if err := s.Normalize(); err != nil {
		return 0, err
	}
	return outcome, nil
}

// MeasureAll measures every qubit of the register in index order and returns
// the observed bits.
func MeasureAll(s *QSystem) ([]int, error) {
	bits := make([]int, s.n)
	for i := 0; i < s.n; i++ {
		b, err := s.measure(i)
		if err != nil {
			return nil, err
		}
		bits[i] = b
	}
	return bits, nil
}

// Qubit is a lightweight handle identifying one qubit's position within a
// QSystem. It is the unit of channel transfer: passing a handle over a
// quantum channel moves logical mutation rights to the receiving agent, and
// the sender must not touch the qubit afterwards.
type Qubit struct {
	sys   *QSystem
	index int
}

// System returns the register backing this handle.
func (q *Qubit) System() *QSystem { return q.sys }

// Index returns the qubit's position within its register.
func (q *Qubit) Index() int { return q.index }

// Apply applies a single-qubit unitary to this qubit in place.
func (q *Qubit) Apply(u Unitary) { q.sys.applySingle(u, q.index) }

// Measure performs a projective measurement of this qubit in the
// computational basis, collapsing the register state, and returns the
// observed bit.
func (q *Qubit) Measure() (int, error) { return q.sys.measure(q.index) }
