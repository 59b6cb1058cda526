// Package qec implements quantum error correction codes over qmesh
// registers. The nine-qubit Shor code protects one logical qubit against an
// arbitrary error on any single physical qubit by concatenating a
// three-qubit phase-flip code with three three-qubit bit-flip codes.
package qec

import (
	"fmt"

	"github.com/hupe1980/qmesh/qsystem"
)

// BlockSize is the number of physical qubits of one Shor-encoded logical
// qubit.
const BlockSize = 9

func checkBlock(block []*qsystem.Qubit) error {
	if len(block) != BlockSize {
		return fmt.Errorf("qec: shor block needs %d qubits, got %d", BlockSize, len(block))
	}
	return nil
}

// Encode spreads the logical state held in block[0] across all nine qubits.
// The remaining eight qubits must be in |0⟩.
func Encode(block []*qsystem.Qubit) error {
	if err := checkBlock(block); err != nil {
		return err
	}

	// Phase redundancy across the three triplets.
	if err := qsystem.CNOT(block[0], block[3]); err != nil {
		return err
	}
	if err := qsystem.CNOT(block[0], block[6]); err != nil {
		return err
	}
	qsystem.H(block[0])
	qsystem.H(block[3])
	qsystem.H(block[6])

	// Bit redundancy within each triplet.
	for _, b := range []int{0, 3, 6} {
		if err := qsystem.CNOT(block[b], block[b+1]); err != nil {
			return err
		}
		if err := qsystem.CNOT(block[b], block[b+2]); err != nil {
			return err
		}
	}
	return nil
}

// Decode inverts the encoding with a coherent majority vote, recovering the
// logical state into block[0] for any error on at most one physical qubit.
// The other eight qubits are left holding syndrome information.
func Decode(block []*qsystem.Qubit) error {
	if err := checkBlock(block); err != nil {
		return err
	}

	// Majority vote within each triplet corrects bit flips.
	for _, b := range []int{0, 3, 6} {
		if err := qsystem.CNOT(block[b], block[b+1]); err != nil {
			return err
		}
		if err := qsystem.CNOT(block[b], block[b+2]); err != nil {
			return err
		}
		if err := qsystem.Toffoli(block[b+2], block[b+1], block[b]); err != nil {
			return err
		}
	}

	qsystem.H(block[0])
	qsystem.H(block[3])
	qsystem.H(block[6])

	// Majority vote across triplets corrects phase flips.
	if err := qsystem.CNOT(block[0], block[3]); err != nil {
		return err
	}
	if err := qsystem.CNOT(block[0], block[6]); err != nil {
		return err
	}
	return qsystem.Toffoli(block[6], block[3], block[0])
}
