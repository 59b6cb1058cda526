package qsystem

import "errors"

var (
	// ErrIndexOutOfRange signals a qubit index outside the register's qubit
	// count. It indicates a programming error in protocol logic.
	ErrIndexOutOfRange = errors.New("qubit index out of range")

	// ErrDuplicateOperand signals a multi-qubit gate invoked with the same
	// qubit in more than one operand position.
	ErrDuplicateOperand = errors.New("gate operands must be distinct qubits")

	// ErrDifferentSystems signals a multi-qubit gate whose operands belong
	// to different registers. Composite systems are fixed at construction;
	// qubits of independent registers cannot interact.
	ErrDifferentSystems = errors.New("gate operands belong to different registers")

	// ErrNormDrift signals that a measurement probability or the state
	// vector norm drifted outside tolerance, indicating a gate-application
	// bug rather than ordinary floating-point noise.
	ErrNormDrift = errors.New("state vector norm drifted beyond tolerance")
)
