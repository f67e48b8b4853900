package qsim

import (
	"fmt"
	"strings"
)

// Signature is the declared interface of an operation: how many qubits it
// takes (or whether it takes a whole register) and which capability
// variants it supports. Slot/candidate compatibility is decided here, not
// by comparing names.
type Signature struct {
	Qubits     int
	Register   bool
	Adjoint    bool
	Controlled bool
}

// String renders the signature for mismatch diagnostics.
func (s Signature) String() string {
	var b strings.Builder
	if s.Register {
		b.WriteString("operation(qubit register)")
	} else if s.Qubits == 1 {
		b.WriteString("operation(1 qubit)")
	} else {
		fmt.Fprintf(&b, "operation(%d qubits)", s.Qubits)
	}
	if s.Adjoint {
		b.WriteString(" + adjoint")
	}
	if s.Controlled {
		b.WriteString(" + controlled")
	}
	return b.String()
}

// AcceptsImpl reports whether an implementation with signature impl can
// stand in for a slot declared with s.
func (s Signature) AcceptsImpl(impl Signature) error {
	if s.Register != impl.Register {
		return fmt.Errorf("qsim: expected %s, got %s", s, impl)
	}
	if !s.Register && s.Qubits != impl.Qubits {
		return fmt.Errorf("qsim: expected %s, got %s", s, impl)
	}
	if s.Adjoint && !impl.Adjoint {
		return fmt.Errorf("qsim: slot requires an adjoint variant, got %s", impl)
	}
	if s.Controlled && !impl.Controlled {
		return fmt.Errorf("qsim: slot requires a controlled variant, got %s", impl)
	}
	return nil
}

// Body is the runnable form of an operation. Register operations receive
// all qubits as one slice; fixed-arity operations receive them positionally
// in the same slice.
type Body func(s *Simulator, qs []*Qubit) error

// Operation pairs a name and signature with a runnable body. Candidate
// bodies come from interpreted submissions; library bodies are native.
type Operation struct {
	name string
	sig  Signature
	body Body
}

// NewOperation builds an operation. Name and body are required.
func NewOperation(name string, sig Signature, body Body) (Operation, error) {
	if strings.TrimSpace(name) == "" {
		return Operation{}, fmt.Errorf("qsim: operation name is required")
	}
	if body == nil {
		return Operation{}, fmt.Errorf("qsim: operation body is required for %s", name)
	}
	return Operation{name: name, sig: sig, body: body}, nil
}

// Name returns the operation's simple name.
func (op Operation) Name() string { return op.name }

// Signature returns the operation's declared interface.
func (op Operation) Signature() Signature { return op.sig }

// IsZero reports whether the operation carries no body.
func (op Operation) IsZero() bool { return op.body == nil }

// Apply runs the operation on the given qubits. Panics raised by the body
// (stale handles, interpreted-code faults) are recovered into errors so a
// submission can never crash the invocation.
func (op Operation) Apply(s *Simulator, qs ...*Qubit) (err error) {
	if op.body == nil {
		return Faultf("qsim: operation %s has no body", op.name)
	}
	if !op.sig.Register && len(qs) != op.sig.Qubits {
		return Faultf("qsim: %s expects %d qubit(s), got %d", op.name, op.sig.Qubits, len(qs))
	}
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Fault); ok {
				err = f
				return
			}
			err = Faultf("qsim: %s faulted: %v", op.name, r)
		}
	}()
	return op.body(s, qs)
}
