package compile

import (
	"errors"
	"strings"
	"testing"

	"github.com/louisabraham/QuantumKatas/qsim"
)

const fragmentSolve = `
func Solve(q *qsim.Qubit) {
	qsim.X(q)
}
`

const fullFileSolve = `package solution

import "github.com/louisabraham/QuantumKatas/qsim"

func Solve(q *qsim.Qubit) {
	qsim.H(q)
}
`

func TestCompileBareFragment(t *testing.T) {
	res, err := New().Compile(fragmentSolve)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(res.Candidates))
	}
	cand := res.Candidates[0]
	if cand.Name != "Solve" || cand.Namespace != SubmissionNamespace {
		t.Fatalf("unexpected candidate identity: %s", cand.QualifiedName())
	}
	if got := cand.Signature; got.Qubits != 1 || got.Register {
		t.Fatalf("unexpected signature: %v", got)
	}

	// The interpreted body must actually move amplitudes.
	s := qsim.New(qsim.WithSeed(1))
	q := s.Reset(1)[0]
	if err := cand.Op.Apply(s, q); err != nil {
		t.Fatalf("apply candidate: %v", err)
	}
	if amps := s.Amplitudes(); amps[1] != 1 {
		t.Fatalf("candidate did not apply X: %v", amps)
	}
}

func TestCompileFullFileWithImport(t *testing.T) {
	res, err := New().Compile(fullFileSolve)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Name != "Solve" {
		t.Fatalf("unexpected candidates: %+v", res.Candidates)
	}
}

func TestCompileSyntaxErrorMapsPositions(t *testing.T) {
	_, err := New().Compile("func Solve(q *qsim.Qubit) {\n\tqsim.X(q\n}\n")
	if err == nil {
		t.Fatalf("expected compile failure")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(cerr.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics")
	}
	// The fragment header must not shift reported line numbers: the broken
	// call sits on learner lines 2-3.
	if !strings.HasPrefix(cerr.Diagnostics[0], "2:") && !strings.HasPrefix(cerr.Diagnostics[0], "3:") {
		t.Fatalf("expected diagnostic near learner line 2-3, got %q", cerr.Diagnostics[0])
	}
}

func TestCompileEmptySubmissionFails(t *testing.T) {
	if _, err := New().Compile("   \n"); err == nil {
		t.Fatalf("expected empty submission to fail")
	}
}

func TestCompileWarnsOnNonOperationFunctions(t *testing.T) {
	src := `
func Solve(q *qsim.Qubit) {}

func Helper(n int) {}
`
	res, err := New().Compile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("expected only Solve, got %d candidates", len(res.Candidates))
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "Helper") {
		t.Fatalf("expected warning about Helper, got %v", res.Warnings)
	}
}

func TestCompileIgnoresUnexportedHelpers(t *testing.T) {
	src := `
func Solve(q *qsim.Qubit) {
	flip(q)
}

func flip(q *qsim.Qubit) {
	qsim.X(q)
}
`
	res, err := New().Compile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Candidates) != 1 || len(res.Warnings) != 0 {
		t.Fatalf("helpers must not be candidates or warnings: %+v", res)
	}
}

func TestCompileRegisterOperation(t *testing.T) {
	src := `
func Solve(qs []*qsim.Qubit) {
	for _, q := range qs {
		qsim.H(q)
	}
}
`
	res, err := New().Compile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Candidates) != 1 || !res.Candidates[0].Signature.Register {
		t.Fatalf("expected register candidate, got %+v", res.Candidates)
	}
}

func TestCompileMultipleOperations(t *testing.T) {
	src := `
func B(q *qsim.Qubit) {}

func A(q *qsim.Qubit) {}
`
	res, err := New().Compile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
}

func TestCompileGroupedQubitParams(t *testing.T) {
	src := `
func Solve(a, b *qsim.Qubit) {
	qsim.CNOT(a, b)
}
`
	res, err := New().Compile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := res.Candidates[0].Signature.Qubits; got != 2 {
		t.Fatalf("grouped params should count as 2 qubits, got %d", got)
	}
}
