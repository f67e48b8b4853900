package grader

import (
	"fmt"

	"github.com/louisabraham/QuantumKatas/internal/kata"
)

// SlotError reports that a candidate has no usable answer slot: either no
// operation with the candidate's name exists in the exercise's namespace,
// or one exists with an incompatible interface.
type SlotError struct {
	Slot   string
	Reason string
}

// Error implements the error interface.
func (e *SlotError) Error() string {
	return fmt.Sprintf("grader: %s: %s", e.Slot, e.Reason)
}

// LocateSlot derives the answer slot for a candidate by composing the
// exercise namespace with the candidate's simple name, then validates the
// slot's declared interface against the candidate before anything runs.
func LocateSlot(resolver Resolver, exercise, candidate kata.Definition) (kata.Definition, error) {
	name := exercise.Namespace + "." + candidate.Name
	slot, err := resolver.Resolve(name)
	if err != nil {
		return kata.Definition{}, &SlotError{
			Slot:   name,
			Reason: fmt.Sprintf("operation %q is not an answer slot of %s", candidate.Name, exercise.Namespace),
		}
	}
	if slot.Kind != kata.KindOperation {
		return kata.Definition{}, &SlotError{
			Slot:   name,
			Reason: fmt.Sprintf("%s is a %s, not an operation", name, slot.Kind),
		}
	}
	if err := slot.Signature.AcceptsImpl(candidate.Signature); err != nil {
		return kata.Definition{}, &SlotError{
			Slot:   name,
			Reason: fmt.Sprintf("expected %s, got %s", slot.Signature, candidate.Signature),
		}
	}
	return slot, nil
}
