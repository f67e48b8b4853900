// Package kata defines the compiled-definition model shared by the
// catalog, the submission compiler, and the grading pipeline.
package kata

import (
	"fmt"
	"strings"

	"github.com/louisabraham/QuantumKatas/qsim"
)

// Kind distinguishes the definitions the catalog can hold.
type Kind string

const (
	// KindExercise is a named verification routine.
	KindExercise Kind = "exercise"
	// KindOperation is an invocable operation: an answer slot in an
	// exercise namespace, or a candidate extracted from a submission.
	KindOperation Kind = "operation"
)

// EntryFunc is an exercise's verification entry point. The bound candidate
// is handed in explicitly so the routine is unaware of the substitution
// machinery behind it.
type EntryFunc func(s *qsim.Simulator, solve qsim.Operation) error

// Definition is one compiled unit: an exercise, an answer slot, or a
// candidate. Identity is Namespace plus Name; definitions are immutable
// once registered.
type Definition struct {
	Namespace string
	Name      string
	Kind      Kind
	Signature qsim.Signature

	// Entry is set for exercises only.
	Entry EntryFunc
	// Op carries the runnable body of an operation definition.
	Op qsim.Operation
	// Reference is an exercise's known-good implementation, used by the
	// library self-check.
	Reference *qsim.Operation
	// Description is a short human-readable task statement.
	Description string
}

// QualifiedName returns "Namespace.Name".
func (d Definition) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// Validate ensures the definition is well-formed for its kind.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("kata: definition name is required")
	}
	if strings.TrimSpace(d.Namespace) == "" {
		return fmt.Errorf("kata: namespace is required for %s", d.Name)
	}
	switch d.Kind {
	case KindExercise:
		if d.Entry == nil {
			return fmt.Errorf("kata: exercise %s has no entry point", d.QualifiedName())
		}
	case KindOperation:
		if d.Op.IsZero() {
			return fmt.Errorf("kata: operation %s has no body", d.QualifiedName())
		}
	default:
		return fmt.Errorf("kata: %s has unknown kind %q", d.QualifiedName(), d.Kind)
	}
	return nil
}

// SplitName splits a qualified name into namespace and simple name. A name
// without a dot has an empty namespace.
func SplitName(qualified string) (namespace, simple string) {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return "", qualified
	}
	return qualified[:idx], qualified[idx+1:]
}
