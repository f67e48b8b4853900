// Package basicgates holds the single-qubit gate exercises. Submissions
// name their operation Solve and take one *qsim.Qubit.
package basicgates

import (
	"github.com/louisabraham/QuantumKatas/internal/catalog"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/internal/katas/verify"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// Namespace identifies this kata group in the catalog.
const Namespace = "Katas.BasicGates"

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
	identity := verify.MustOperation("Identity", oneQubit,
		func(*qsim.Simulator, []*qsim.Qubit) error { return nil })
	stateFlip := verify.MustOperation("StateFlip", oneQubit,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.X(qs[0])
			return nil
		})
	signFlip := verify.MustOperation("SignFlip", oneQubit,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.Z(qs[0])
			return nil
		})
	basisChange := verify.MustOperation("BasisChange", oneQubit,
		func(s *qsim.Simulator, qs []*qsim.Qubit) error {
			qsim.H(qs[0])
			return nil
		})

	return []kata.Definition{
		verify.Slot(Namespace, "Solve", oneQubit),
		verify.Exercise(Namespace, "Identity",
			"Leave the qubit exactly as you found it.",
			oneQubit, verify.EqualsReference(1, identity), identity),
		verify.Exercise(Namespace, "StateFlip",
			"Map |0> to |1> and |1> to |0>.",
			oneQubit, verify.EqualsReference(1, stateFlip), stateFlip),
		verify.Exercise(Namespace, "SignFlip",
			"Flip the sign of the |1> amplitude.",
			oneQubit, verify.EqualsReference(1, signFlip), signFlip),
		verify.Exercise(Namespace, "BasisChange",
			"Convert between the computational and Hadamard bases.",
			oneQubit, verify.EqualsReference(1, basisChange), basisChange),
	}
}
