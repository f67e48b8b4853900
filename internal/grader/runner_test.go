package grader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/louisabraham/QuantumKatas/internal/catalog"
	"github.com/louisabraham/QuantumKatas/internal/compile"
	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/internal/katas/basicgates"
	"github.com/louisabraham/QuantumKatas/internal/katas/multiqubit"
	"github.com/louisabraham/QuantumKatas/internal/katas/superposition"
	"github.com/louisabraham/QuantumKatas/qsim"
)

type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		r.lines = append(r.lines, line)
	}
	return len(p), nil
}

func (r *lineRecorder) count(substr string) int {
	n := 0
	for _, line := range r.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

type fakeResolver struct {
	defs  map[string]kata.Definition
	calls []string
}

func (f *fakeResolver) Resolve(name string) (kata.Definition, error) {
	f.calls = append(f.calls, name)
	def, ok := f.defs[name]
	if !ok {
		return kata.Definition{}, fmt.Errorf("not found: %s", name)
	}
	return def, nil
}

type fakeCompiler struct {
	res   compile.Result
	err   error
	calls int
}

func (f *fakeCompiler) Compile(string) (compile.Result, error) {
	f.calls++
	return f.res, f.err
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New("Katas")
	for _, register := range []func(*catalog.Catalog) error{
		basicgates.Register,
		multiqubit.Register,
		superposition.Register,
	} {
		if err := register(c); err != nil {
			t.Fatalf("register katas: %v", err)
		}
	}
	return c
}

func newTestHarness(t *testing.T) (*Runner, *lineRecorder, *lineRecorder) {
	t.Helper()
	cat := newTestCatalog(t)
	info := &lineRecorder{}
	errs := &lineRecorder{}
	ch := diag.New(info, errs)
	runner, err := NewRunner(cat, compile.New(), ch, WithSimulatorOptions(qsim.WithSeed(11)))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return runner, info, errs
}

func TestUnknownExerciseSkipsCompilation(t *testing.T) {
	resolver := &fakeResolver{defs: map[string]kata.Definition{}}
	compiler := &fakeCompiler{}
	ch := diag.New(nil, nil)
	runner, err := NewRunner(resolver, compiler, ch)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	out := runner.Check(Invocation{Kata: "NoSuchKata", Source: "func Solve(q *qsim.Qubit) {}"})
	if out.Status != StatusResolutionFailure {
		t.Fatalf("status = %s, want %s", out.Status, StatusResolutionFailure)
	}
	if compiler.calls != 0 {
		t.Fatalf("compiler must not run for unknown exercises, ran %d times", compiler.calls)
	}
}

func TestZeroCandidatesFailBeforeSlotLookup(t *testing.T) {
	runner, _, _ := newTestHarness(t)
	out := runner.Check(Invocation{Kata: "Identity", Source: "func helper(q *qsim.Qubit) {}"})
	if out.Status != StatusResolutionFailure {
		t.Fatalf("status = %s, want %s", out.Status, StatusResolutionFailure)
	}
	if out.Candidate != "" {
		t.Fatalf("no candidate should be selected, got %q", out.Candidate)
	}
}

func TestCompileFailurePropagatesDiagnosticsVerbatim(t *testing.T) {
	runner, _, errs := newTestHarness(t)
	out := runner.Check(Invocation{Kata: "Identity", Source: "func Solve(q *qsim.Qubit) {"})
	if out.Status != StatusCompileFailure {
		t.Fatalf("status = %s, want %s", out.Status, StatusCompileFailure)
	}
	if len(out.Messages) == 0 || len(errs.lines) == 0 {
		t.Fatalf("compile diagnostics missing: messages=%v stream=%v", out.Messages, errs.lines)
	}
	if out.Messages[0] != errs.lines[0] {
		t.Fatalf("streamed diagnostic differs from outcome: %q vs %q", errs.lines[0], out.Messages[0])
	}
}

// Scenario A: a no-op Solve passes the Identity exercise.
func TestIdentityWithNoOpSolvePasses(t *testing.T) {
	runner, _, _ := newTestHarness(t)
	out := runner.Check(Invocation{Kata: "Identity", Source: "func Solve(q *qsim.Qubit) {}"})
	if !out.Passed() {
		t.Fatalf("expected success, got %s: %v", out.Status, out.Messages)
	}
	if out.Kata != "Katas.BasicGates.Identity" || out.Candidate != "Solve" {
		t.Fatalf("unexpected outcome identity: %+v", out)
	}
}

// Scenario B: a state-changing Solve fails Identity with assertion text.
func TestIdentityWithFlippingSolveFails(t *testing.T) {
	runner, _, errs := newTestHarness(t)
	out := runner.Check(Invocation{Kata: "Identity", Source: "func Solve(q *qsim.Qubit) { qsim.X(q) }"})
	if out.Status != StatusRuntimeFailure {
		t.Fatalf("status = %s, want %s", out.Status, StatusRuntimeFailure)
	}
	if len(out.Messages) < 2 || !strings.Contains(out.Messages[0], "Try again") {
		t.Fatalf("expected generic retry line first, got %v", out.Messages)
	}
	if errs.count("on input") == 0 {
		t.Fatalf("expected per-basis assertion text, got %v", errs.lines)
	}
}

// Scenario C: a blob with no source part is an input error.
func TestBlobWithoutSourceIsInputError(t *testing.T) {
	runner, _, errs := newTestHarness(t)
	out := runner.CheckBlob("Identity")
	if out.Status != StatusInputError {
		t.Fatalf("status = %s, want %s", out.Status, StatusInputError)
	}
	if len(errs.lines) == 0 {
		t.Fatalf("input error must be streamed")
	}
}

// Scenario D: with operations A and B, A is selected and the multiple
// candidates notice appears exactly once.
func TestMultipleOperationsPickLexicographicallySmallest(t *testing.T) {
	runner, info, _ := newTestHarness(t)
	src := "func B(q *qsim.Qubit) {}\n\nfunc A(q *qsim.Qubit) {}"
	out := runner.Check(Invocation{Kata: "Identity", Source: src})
	if out.Candidate != "A" {
		t.Fatalf("candidate = %q, want A", out.Candidate)
	}
	if got := info.count("grading A"); got != 1 {
		t.Fatalf("multiple-candidates notice emitted %d times, want 1: %v", got, info.lines)
	}
	// A has no answer slot in the exercise namespace.
	if out.Status != StatusSlotMismatch {
		t.Fatalf("status = %s, want %s", out.Status, StatusSlotMismatch)
	}
}

func TestCandidateWithoutSlotIsSlotMismatch(t *testing.T) {
	runner, _, errs := newTestHarness(t)
	out := runner.Check(Invocation{Kata: "Identity", Source: "func Answer(q *qsim.Qubit) {}"})
	if out.Status != StatusSlotMismatch {
		t.Fatalf("status = %s, want %s", out.Status, StatusSlotMismatch)
	}
	if errs.count("Katas.BasicGates.Answer") == 0 {
		t.Fatalf("mismatch must name the missing slot: %v", errs.lines)
	}
}

func TestArityMismatchIsSlotMismatchWithSignatures(t *testing.T) {
	runner, _, errs := newTestHarness(t)
	out := runner.Check(Invocation{Kata: "Identity", Source: "func Solve(a, b *qsim.Qubit) {}"})
	if out.Status != StatusSlotMismatch {
		t.Fatalf("status = %s, want %s", out.Status, StatusSlotMismatch)
	}
	if errs.count("expected operation(1 qubit)") == 0 {
		t.Fatalf("mismatch must show expected vs actual signature: %v", errs.lines)
	}
}

func TestRepeatedSuccessIsIdempotent(t *testing.T) {
	runner, _, _ := newTestHarness(t)
	inv := Invocation{Kata: "Katas.Superposition.PlusState", Source: "func Solve(q *qsim.Qubit) { qsim.H(q) }"}
	first := runner.Check(inv)
	second := runner.Check(inv)
	if !first.Passed() || !second.Passed() {
		t.Fatalf("both runs must pass: %s / %s", first.Status, second.Status)
	}
	if first.RunID == second.RunID {
		t.Fatalf("each invocation needs its own run id")
	}
}

func TestVerificationPanicIsContained(t *testing.T) {
	sig := qsim.Signature{Qubits: 1}
	slotOp, _ := qsim.NewOperation("Solve", sig, func(*qsim.Simulator, []*qsim.Qubit) error { return nil })
	resolver := &fakeResolver{defs: map[string]kata.Definition{
		"Panicky": {
			Namespace: "Katas.Test",
			Name:      "Panicky",
			Kind:      kata.KindExercise,
			Signature: sig,
			Entry: func(*qsim.Simulator, qsim.Operation) error {
				panic("verification bug")
			},
		},
		"Katas.Test.Solve": {
			Namespace: "Katas.Test",
			Name:      "Solve",
			Kind:      kata.KindOperation,
			Signature: sig,
			Op:        slotOp,
		},
	}}
	errs := &lineRecorder{}
	ch := diag.New(nil, errs)
	runner, err := NewRunner(resolver, compile.New(), ch)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	out := runner.Check(Invocation{Kata: "Panicky", Source: "func Solve(q *qsim.Qubit) {}"})
	if out.Status != StatusRuntimeFailure {
		t.Fatalf("status = %s, want %s", out.Status, StatusRuntimeFailure)
	}
	if errs.count("verification bug") == 0 {
		t.Fatalf("panic text must surface as a fault message: %v", errs.lines)
	}
}

func TestCheckCandidateGradesReferenceImplementations(t *testing.T) {
	runner, _, _ := newTestHarness(t)
	cat := newTestCatalog(t)
	def, err := cat.Resolve("BellState")
	if err != nil {
		t.Fatalf("resolve BellState: %v", err)
	}
	candidate := kata.Definition{
		Namespace: compile.SubmissionNamespace,
		Name:      "Solve",
		Kind:      kata.KindOperation,
		Signature: def.Reference.Signature(),
		Op:        *def.Reference,
	}
	out := runner.CheckCandidate("BellState", candidate)
	if !out.Passed() {
		t.Fatalf("reference implementation must pass: %s %v", out.Status, out.Messages)
	}
}
