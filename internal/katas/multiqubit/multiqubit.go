// Package multiqubit holds the two-qubit exercises. Submissions name
// their operation Solve and take two *qsim.Qubit parameters.
package multiqubit

import (
	"math"

	"github.com/louisabraham/QuantumKatas/internal/catalog"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/internal/katas/verify"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// Namespace identifies this kata group in the catalog.
const Namespace = "Katas.MultiQubit"

var twoQubits = qsim.Signature{Qubits: 2}

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
	bell := []complex128{inv, 0, 0, inv}

	bellRef := verify.MustOperation("BellState", twoQubits,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.H(qs[0])
			qsim.CNOT(qs[0], qs[1])
			return nil
		})
	swapRef := verify.MustOperation("SwapQubits", twoQubits,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.SWAP(qs[0], qs[1])
			return nil
		})

	return []kata.Definition{
		verify.Slot(Namespace, "Solve", twoQubits),
		verify.Exercise(Namespace, "BellState",
			"Prepare the Bell state (|00> + |11>) / sqrt(2) from |00>.",
			twoQubits, verify.PreparesState(2, bell, "bell state"), bellRef),
		verify.Exercise(Namespace, "SwapQubits",
			"Exchange the states of the two qubits.",
			twoQubits, verify.EqualsReference(2, swapRef), swapRef),
	}
}
