// Package qsystem implements the quantum register engine: dense state-vector
// storage for fixed-size groups of qubits, unitary gate application and
// projective measurement in the computational basis.
//
// A QSystem owns a complex state vector of length 2^N for N qubits fixed at
// construction; composite systems are formed by tensor product once, never
// dynamically. Qubit values are lightweight handles into a QSystem and are
// the unit that agents pass across quantum channels.
//
// Gates are applied with bit-indexed amplitude-pair updates rather than by
// expanding operators to full 2^N x 2^N matrices, so multi-qubit gates work
// on arbitrary (non-adjacent) qubit indices. Qubit index 0 corresponds to
// the most significant bit of a basis-state label, matching the tensor
// product order |q0⟩⊗|q1⟩⊗...⊗|qN-1⟩.
package qsystem
