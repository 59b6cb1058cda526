package qsystem

import "fmt"

// H applies the Hadamard transform to q.
func H(q *Qubit) { q.Apply(GateH) }

// X applies the Pauli-X (bit flip) to q.
func X(q *Qubit) { q.Apply(GateX) }

// Y applies the Pauli-Y to q.
func Y(q *Qubit) { q.Apply(GateY) }

// Z applies the Pauli-Z (phase flip) to q.
func Z(q *Qubit) { q.Apply(GateZ) }

// RX rotates q about the X axis by theta.
func RX(q *Qubit, theta float64) { q.Apply(RXGate(theta)) }

// RZ rotates q about the Z axis by theta.
func RZ(q *Qubit, theta float64) { q.Apply(RZGate(theta)) }

// Apply applies an arbitrary single-qubit unitary to q.
func Apply(q *Qubit, u Unitary) { q.Apply(u) }

func checkOperands(qs ...*Qubit) error {
	sys := qs[0].sys
	for i, q := range qs {
		if q.sys != sys {
			return fmt.Errorf("operand %d: %w", i, ErrDifferentSystems)
		}
		for _, other := range qs[i+1:] {
			if other.index == q.index {
				return fmt.Errorf("operand index %d repeated: %w", q.index, ErrDuplicateOperand)
			}
		}
	}
	return nil
}

// CNOT applies a controlled-NOT: target is flipped on basis states where
// control is set. Operands must be distinct qubits of the same register.
func CNOT(control, target *Qubit) error {
	if err := checkOperands(control, target); err != nil {
		return fmt.Errorf("cnot: %w", err)
	}
	s := control.sys
	cbit, tbit := s.bit(control.index), s.bit(target.index)
	for i := range s.state {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			s.state[i], s.state[j] = s.state[j], s.state[i]
		}
	}
	return nil
}

// Toffoli applies a doubly-controlled NOT: target is flipped on basis states
// where both controls are set. The two controls are symmetric. Operands must
// be distinct qubits of the same register.
func Toffoli(control1, control2, target *Qubit) error {
	if err := checkOperands(control1, control2, target); err != nil {
		return fmt.Errorf("toffoli: %w", err)
	}
	s := control1.sys
	c1, c2 := s.bit(control1.index), s.bit(control2.index)
	tbit := s.bit(target.index)
	for i := range s.state {
		if i&c1 != 0 && i&c2 != 0 && i&tbit == 0 {
			j := i | tbit
			s.state[i], s.state[j] = s.state[j], s.state[i]
		}
	}
	return nil
}
