// Package superposition holds the state-preparation exercises: the
// candidate receives qubits in |0...0> and must prepare a target state.
package superposition

import (
	"math"

	"github.com/louisabraham/QuantumKatas/internal/catalog"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/internal/katas/verify"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// Namespace identifies this kata group in the catalog.
const Namespace = "Katas.Superposition"

var oneQubit = qsim.Signature{Qubits: 1}

// Register installs the namespace's exercises and answer slot.
func Register(c *catalog.Catalog) error {
	for _, def := range definitions() {
		if err := c.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func definitions() []kata.Definition {
	inv := complex(1/math.Sqrt2, 0)
	plus := []complex128{inv, inv}
	minus := []complex128{inv, -inv}

	plusRef := verify.MustOperation("PlusState", oneQubit,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.H(qs[0])
			return nil
		})
	minusRef := verify.MustOperation("MinusState", oneQubit,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.X(qs[0])
			qsim.H(qs[0])
			return nil
		})

	return []kata.Definition{
		verify.Slot(Namespace, "Solve", oneQubit),
		verify.Exercise(Namespace, "PlusState",
			"Prepare (|0> + |1>) / sqrt(2) from |0>.",
			oneQubit, verify.PreparesState(1, plus, "plus state"), plusRef),
		verify.Exercise(Namespace, "MinusState",
			"Prepare (|0> - |1>) / sqrt(2) from |0>.",
			oneQubit, verify.PreparesState(1, minus, "minus state"), minusRef),
	}
}
