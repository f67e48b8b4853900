// Package grader is the grading pipeline: resolve an exercise, compile the
// submission, extract the one candidate, locate and validate its answer
// slot, bind it into a fresh engine, run the verification, and classify
// the result. Every stage is sequential and any failure short-circuits.
package grader

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/louisabraham/QuantumKatas/internal/compile"
	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// Status classifies one grading invocation.
type Status string

const (
	StatusSuccess           Status = "success"
	StatusInputError        Status = "input-error"
	StatusCompileFailure    Status = "compile-failure"
	StatusResolutionFailure Status = "resolution-failure"
	StatusSlotMismatch      Status = "slot-mismatch"
	StatusRuntimeFailure    Status = "runtime-failure"
)

// retryMessage is the deliberately generic lead line for failed
// verifications; the verbatim fault text follows it.
const retryMessage = "Oops! Your operation did not pass verification. Try again!"

// Outcome is the terminal result of one invocation. Messages repeat what
// was already streamed to the diagnostic channel, in emission order.
type Outcome struct {
	RunID     string
	Status    Status
	Kata      string
	Candidate string
	Messages  []string
	Duration  time.Duration
}

// Passed reports whether the submission was accepted.
func (o Outcome) Passed() bool { return o.Status == StatusSuccess }

// Resolver looks compiled definitions up by name. The catalog implements
// it; the pipeline never mutates it.
type Resolver interface {
	Resolve(name string) (kata.Definition, error)
}

// SourceCompiler compiles submitted source text.
type SourceCompiler interface {
	Compile(src string) (compile.Result, error)
}

// Runner orchestrates one grading invocation at a time. A Runner may be
// shared, but every Check call builds its own engine, so concurrent calls
// only share the read-only resolver.
type Runner struct {
	resolver Resolver
	compiler SourceCompiler
	ch       *diag.Channel
	simOpts  []qsim.Option
	newID    func() string
	clock    func() time.Time
}

// Option customizes the runner.
type Option func(*Runner)

// WithSimulatorOptions forwards options to every engine the runner builds.
func WithSimulatorOptions(opts ...qsim.Option) Option {
	return func(r *Runner) {
		r.simOpts = append(r.simOpts, opts...)
	}
}

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRunner wires the pipeline to a definition resolver, a submission
// compiler, and a diagnostic channel.
func NewRunner(resolver Resolver, compiler SourceCompiler, ch *diag.Channel, opts ...Option) (*Runner, error) {
	if resolver == nil {
		return nil, fmt.Errorf("grader: resolver is required")
	}
	if compiler == nil {
		return nil, fmt.Errorf("grader: compiler is required")
	}
	if ch == nil {
		return nil, fmt.Errorf("grader: diagnostic channel is required")
	}
	r := &Runner{
		resolver: resolver,
		compiler: compiler,
		ch:       ch,
		newID:    uuid.NewString,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// CheckBlob parses the raw "<exercise-name> <source>" form and grades it.
func (r *Runner) CheckBlob(blob string) Outcome {
	inv, err := ParseInvocation(blob)
	if err != nil {
		r.ch.Errorf("%s", err.Error())
		return Outcome{
			RunID:    r.newID(),
			Status:   StatusInputError,
			Messages: []string{err.Error()},
		}
	}
	return r.Check(inv)
}

// Check grades one submission against one exercise.
func (r *Runner) Check(inv Invocation) Outcome {
	started := r.clock()
	out := Outcome{RunID: r.newID(), Kata: inv.Kata}

	exercise, err := r.resolveExercise(inv.Kata)
	if err != nil {
		return r.fail(out, started, StatusResolutionFailure, err.Error())
	}
	out.Kata = exercise.QualifiedName()

	res, err := r.compiler.Compile(inv.Source)
	if err != nil {
		var cerr *compile.Error
		if errors.As(err, &cerr) {
			return r.fail(out, started, StatusCompileFailure, cerr.Diagnostics...)
		}
		return r.fail(out, started, StatusCompileFailure, err.Error())
	}

	candidate, err := ExtractCandidate(res, r.ch)
	if err != nil {
		return r.fail(out, started, StatusResolutionFailure, err.Error())
	}
	out.Candidate = candidate.Name

	return r.grade(out, started, exercise, candidate)
}

// CheckCandidate grades an already-compiled candidate. The library
// self-check uses it to run reference implementations through the same
// slot-location, binding, and execution stages as real submissions.
func (r *Runner) CheckCandidate(kataName string, candidate kata.Definition) Outcome {
	started := r.clock()
	out := Outcome{RunID: r.newID(), Kata: kataName, Candidate: candidate.Name}

	exercise, err := r.resolveExercise(kataName)
	if err != nil {
		return r.fail(out, started, StatusResolutionFailure, err.Error())
	}
	out.Kata = exercise.QualifiedName()
	return r.grade(out, started, exercise, candidate)
}

func (r *Runner) resolveExercise(name string) (kata.Definition, error) {
	def, err := r.resolver.Resolve(name)
	if err != nil {
		return kata.Definition{}, err
	}
	if def.Kind != kata.KindExercise {
		return kata.Definition{}, fmt.Errorf("grader: %s is not an exercise", def.QualifiedName())
	}
	return def, nil
}

// grade runs the slot-location, binding, and execution stages. The engine
// is created only after the slot checks out and is released on every exit
// path.
func (r *Runner) grade(out Outcome, started time.Time, exercise, candidate kata.Definition) Outcome {
	slot, err := LocateSlot(r.resolver, exercise, candidate)
	if err != nil {
		return r.fail(out, started, StatusSlotMismatch, err.Error())
	}

	engine := NewEngine(r.ch, r.simOpts...)
	defer engine.Release()

	if err := BindCandidate(engine, slot, candidate); err != nil {
		return r.fail(out, started, StatusSlotMismatch, err.Error())
	}

	if err := r.execute(exercise, engine); err != nil {
		messages := append([]string{retryMessage}, faultMessages(err)...)
		return r.fail(out, started, StatusRuntimeFailure, messages...)
	}

	r.ch.Infof("%s passed verification", exercise.QualifiedName())
	out.Status = StatusSuccess
	out.Duration = r.clock().Sub(started)
	return out
}

// execute invokes the exercise entry point against the bound engine. A
// fault can never escape the invocation: panics from interpreted code or
// the verification routine are recovered here.
func (r *Runner) execute(exercise kata.Definition, engine *qsim.Simulator) (err error) {
	bound, ok := engine.Bound()
	if !ok {
		return fmt.Errorf("grader: no candidate bound to engine")
	}
	defer func() {
		if rec := recover(); rec != nil {
			if fault, isFault := rec.(*qsim.Fault); isFault {
				err = fault
				return
			}
			err = qsim.Faultf("verification faulted: %v", rec)
		}
	}()
	return exercise.Entry(engine, bound)
}

func (r *Runner) fail(out Outcome, started time.Time, status Status, messages ...string) Outcome {
	for _, msg := range messages {
		r.ch.Errorf("%s", msg)
	}
	out.Status = status
	out.Messages = messages
	out.Duration = r.clock().Sub(started)
	return out
}

// faultMessages flattens an error into individual fault lines, preserving
// the order faults were raised in. Joined errors contribute one line each.
func faultMessages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, inner := range joined.Unwrap() {
			out = append(out, faultMessages(inner)...)
		}
		return out
	}
	msg := err.Error()
	if msg == "" {
		msg = "verification failed"
	}
	return []string{msg}
}
