package katas

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/louisabraham/QuantumKatas/internal/compile"
	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/grader"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// SlotName is the operation name every shipped namespace accepts
// submissions under.
const SlotName = "Solve"

// SelfCheck grades every shipped exercise's reference implementation
// through the full pipeline. Runs execute concurrently; each one owns its
// simulator and diagnostic channel, so only the read-only catalog is
// shared. Returned outcomes follow catalog order.
func SelfCheck(parallel int, opts ...qsim.Option) ([]grader.Outcome, error) {
	if parallel < 1 {
		parallel = 1
	}
	cat, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	exercises := cat.Exercises()
	outcomes := make([]grader.Outcome, len(exercises))

	var g errgroup.Group
	g.SetLimit(parallel)
	for i, def := range exercises {
		i, def := i, def
		g.Go(func() error {
			if def.Reference == nil {
				return fmt.Errorf("katas: %s has no reference implementation", def.QualifiedName())
			}
			ch := diag.New(nil, nil)
			runner, err := grader.NewRunner(cat, compile.New(), ch, grader.WithSimulatorOptions(opts...))
			if err != nil {
				return err
			}
			candidate := kata.Definition{
				Namespace: compile.SubmissionNamespace,
				Name:      SlotName,
				Kind:      kata.KindOperation,
				Signature: def.Reference.Signature(),
				Op:        *def.Reference,
			}
			outcomes[i] = runner.CheckCandidate(def.QualifiedName(), candidate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
