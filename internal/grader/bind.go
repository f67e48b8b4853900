package grader

import (
	"fmt"

	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// NewEngine constructs the single-use simulator for one invocation. Its
// default message output is redirected to the diagnostic channel's
// informational stream; the caller owns the Release.
func NewEngine(ch *diag.Channel, opts ...qsim.Option) *qsim.Simulator {
	base := []qsim.Option{qsim.WithSink(ch.InfoWriter())}
	return qsim.New(append(base, opts...)...)
}

// BindCandidate registers the candidate operation on the engine as the
// concrete realization of the slot's declared interface. The exercise's
// verification routine receives the bound operation without knowing a
// substitution happened.
func BindCandidate(engine *qsim.Simulator, slot, candidate kata.Definition) error {
	if candidate.Op.IsZero() {
		return fmt.Errorf("grader: candidate %s has no runnable body", candidate.QualifiedName())
	}
	return engine.Bind(slot.Signature, candidate.Op)
}
