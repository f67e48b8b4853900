package katas

import (
	"testing"

	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/qsim"
)

func TestNewCatalogRegistersAllNamespaces(t *testing.T) {
	cat, err := NewCatalog()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	for _, name := range []string{
		"Katas.BasicGates.Identity",
		"Katas.BasicGates.Solve",
		"Katas.MultiQubit.BellState",
		"Katas.Superposition.PlusState",
	} {
		if _, err := cat.Resolve(name); err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
	}
}

func TestEveryExerciseHasReferenceAndSlot(t *testing.T) {
	cat, err := NewCatalog()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	for _, def := range cat.Exercises() {
		if def.Reference == nil {
			t.Errorf("%s: missing reference implementation", def.QualifiedName())
			continue
		}
		slot, err := cat.Resolve(def.Namespace + "." + SlotName)
		if err != nil {
			t.Errorf("%s: missing answer slot: %v", def.Namespace, err)
			continue
		}
		if slot.Kind != kata.KindOperation {
			t.Errorf("%s: slot is %s, want operation", def.Namespace, slot.Kind)
		}
		if err := slot.Signature.AcceptsImpl(def.Reference.Signature()); err != nil {
			t.Errorf("%s: reference does not fit slot: %v", def.QualifiedName(), err)
		}
	}
}

func TestSelfCheckPassesAllReferenceImplementations(t *testing.T) {
	outcomes, err := SelfCheck(4, qsim.WithSeed(3))
	if err != nil {
		t.Fatalf("self check: %v", err)
	}
	if len(outcomes) == 0 {
		t.Fatalf("expected outcomes for shipped exercises")
	}
	for _, out := range outcomes {
		if !out.Passed() {
			t.Errorf("%s: %s %v", out.Kata, out.Status, out.Messages)
		}
	}
}
