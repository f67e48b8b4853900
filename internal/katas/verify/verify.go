// Package verify provides the building blocks kata namespaces use to
// declare exercises, answer slots, and verification entries.
package verify

import (
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// MustOperation builds a native operation or panics. Library operations
// are static, so a failure here is a programming error.
func MustOperation(name string, sig qsim.Signature, body qsim.Body) qsim.Operation {
	op, err := qsim.NewOperation(name, sig, body)
	if err != nil {
		panic(err)
	}
	return op
}

// Exercise declares a verification routine with its reference
// implementation.
func Exercise(namespace, name, description string, sig qsim.Signature, entry kata.EntryFunc, ref qsim.Operation) kata.Definition {
	return kata.Definition{
		Namespace:   namespace,
		Name:        name,
		Kind:        kata.KindExercise,
		Signature:   sig,
		Entry:       entry,
		Reference:   &ref,
		Description: description,
	}
}

// Slot declares a namespace's answer slot: the operation name submissions
// must use, with the interface their implementation has to satisfy. The
// scaffold body faults if it is ever invoked unbound.
func Slot(namespace, name string, sig qsim.Signature) kata.Definition {
	scaffold := MustOperation(name, sig, func(*qsim.Simulator, []*qsim.Qubit) error {
		return qsim.Faultf("%s.%s is a scaffold and has no implementation", namespace, name)
	})
	return kata.Definition{
		Namespace: namespace,
		Name:      name,
		Kind:      kata.KindOperation,
		Signature: sig,
		Op:        scaffold,
	}
}

// EqualsReference builds an entry that checks the candidate acts like the
// reference on every computational basis state of n qubits.
func EqualsReference(n int, ref qsim.Operation) kata.EntryFunc {
	return func(s *qsim.Simulator, solve qsim.Operation) error {
		return qsim.AssertEqualOnBasis(s, n, solve, ref)
	}
}

// PreparesState builds an entry that runs the candidate on |0...0> and
// checks the resulting amplitudes up to global phase.
func PreparesState(n int, want []complex128, label string) kata.EntryFunc {
	return func(s *qsim.Simulator, solve qsim.Operation) error {
		qs := s.Reset(n)
		if err := solve.Apply(s, qs...); err != nil {
			return err
		}
		return qsim.AssertState(s, want, label)
	}
}
