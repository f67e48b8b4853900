// Package qsim is a small state-vector simulator that executes kata
// verification routines. Submissions import it for qubits and gates; the
// grading pipeline drives it through Bind/Bound and Release.
package qsim

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

// Qubit is a handle into a simulator's state vector. Handles become stale
// after Reset or Release and any further use faults.
type Qubit struct {
	sim *Simulator
	idx int
	gen int
}

// Simulator owns one amplitude vector plus the operation bound for the
// current invocation. Instances are single-use: the grading pipeline
// creates one per run and releases it on every exit path.
type Simulator struct {
	amps     []complex128
	qs       []*Qubit
	gen      int
	rng      *rand.Rand
	sink     io.Writer
	released bool
	bound    *Operation
}

// Option customizes a simulator instance.
type Option func(*Simulator)

// WithSeed makes measurement outcomes deterministic (primarily for tests).
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSink redirects Message output. The default sink is os.Stdout.
func WithSink(w io.Writer) Option {
	return func(s *Simulator) {
		if w != nil {
			s.sink = w
		}
	}
}

// New returns a simulator holding zero qubits.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		amps: []complex128{1},
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		sink: os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Reset discards all state and reallocates n qubits in |0...0>. Previously
// issued qubit handles become stale.
func (s *Simulator) Reset(n int) []*Qubit {
	s.checkLive()
	if n < 0 {
		panic(Faultf("qsim: cannot reset to %d qubits", n))
	}
	s.gen++
	s.amps = make([]complex128, 1<<uint(n))
	s.amps[0] = 1
	s.qs = make([]*Qubit, n)
	for i := range s.qs {
		s.qs[i] = &Qubit{sim: s, idx: i, gen: s.gen}
	}
	return s.Qubits()
}

// Allocate adds a single qubit in |0> and returns its handle.
func (s *Simulator) Allocate() *Qubit {
	s.checkLive()
	grown := make([]complex128, len(s.amps)*2)
	copy(grown, s.amps)
	s.amps = grown
	q := &Qubit{sim: s, idx: len(s.qs), gen: s.gen}
	s.qs = append(s.qs, q)
	return q
}

// AllocateRegister adds n qubits in |0...0>.
func (s *Simulator) AllocateRegister(n int) []*Qubit {
	qs := make([]*Qubit, n)
	for i := range qs {
		qs[i] = s.Allocate()
	}
	return qs
}

// Qubits returns the live qubit handles in allocation order.
func (s *Simulator) Qubits() []*Qubit {
	out := make([]*Qubit, len(s.qs))
	copy(out, s.qs)
	return out
}

// NumQubits reports how many qubits are currently allocated.
func (s *Simulator) NumQubits() int {
	return len(s.qs)
}

// Amplitudes returns a copy of the current state vector. Index bit i is
// qubit i (little-endian).
func (s *Simulator) Amplitudes() []complex128 {
	s.checkLive()
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

// Probability reports the chance of measuring q as 1.
func (s *Simulator) Probability(q *Qubit) float64 {
	s.check(q)
	mask := 1 << uint(q.idx)
	p := 0.0
	for i, a := range s.amps {
		if i&mask != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

// Measure collapses q in the computational basis and returns 0 or 1.
func (s *Simulator) Measure(q *Qubit) int {
	s.check(q)
	p1 := s.Probability(q)
	outcome := 0
	if s.rng.Float64() < p1 {
		outcome = 1
	}
	s.collapse(q.idx, outcome)
	return outcome
}

// Message writes one informational line to the simulator's sink.
func (s *Simulator) Message(format string, args ...any) {
	if s.sink == nil {
		return
	}
	fmt.Fprintf(s.sink, format+"\n", args...)
}

// Bind registers impl as the concrete realization of a slot declared with
// sig. Exactly one implementation may be bound per simulator.
func (s *Simulator) Bind(declared Signature, impl Operation) error {
	if s.released {
		return fmt.Errorf("qsim: simulator already released")
	}
	if impl.body == nil {
		return fmt.Errorf("qsim: cannot bind an empty operation")
	}
	if s.bound != nil {
		return fmt.Errorf("qsim: %s is already bound", s.bound.name)
	}
	if err := declared.AcceptsImpl(impl.Signature()); err != nil {
		return err
	}
	s.bound = &impl
	return nil
}

// Bound returns the operation registered via Bind, if any.
func (s *Simulator) Bound() (Operation, bool) {
	if s.bound == nil {
		return Operation{}, false
	}
	return *s.bound, true
}

// Released reports whether the simulator has been disposed.
func (s *Simulator) Released() bool {
	return s.released
}

// Release disposes the simulator. Further gate or measurement calls fault.
// Release is idempotent.
func (s *Simulator) Release() {
	s.released = true
	s.gen++
	s.amps = nil
	s.qs = nil
	s.bound = nil
}

func (s *Simulator) checkLive() {
	if s.released {
		panic(Faultf("qsim: simulator already released"))
	}
}

func (s *Simulator) check(q *Qubit) {
	s.checkLive()
	if q == nil || q.sim != s || q.gen != s.gen {
		panic(Faultf("qsim: stale or foreign qubit handle"))
	}
}

func (s *Simulator) collapse(idx, outcome int) {
	mask := 1 << uint(idx)
	norm := 0.0
	for i, a := range s.amps {
		keep := (i&mask != 0) == (outcome == 1)
		if !keep {
			s.amps[i] = 0
			continue
		}
		norm += real(a)*real(a) + imag(a)*imag(a)
	}
	if norm == 0 {
		panic(Faultf("qsim: measurement collapsed to zero norm"))
	}
	scale := complex(1/sqrt(norm), 0)
	for i := range s.amps {
		s.amps[i] *= scale
	}
}
