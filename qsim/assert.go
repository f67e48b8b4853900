package qsim

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// Tolerance applied by all state assertions.
const eps = 1e-9

// Fault is an assertion failure or runtime error raised while verifying a
// kata. Verification routines encode correctness exclusively as faults;
// the grading pipeline classifies any fault as a failed run.
type Fault struct {
	msg string
}

// Faultf builds a fault with a formatted message.
func Faultf(format string, args ...any) *Fault {
	return &Fault{msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (f *Fault) Error() string { return f.msg }

// AssertState faults unless the simulator state matches want up to a
// global phase. The label names the scenario being checked.
func AssertState(s *Simulator, want []complex128, label string) error {
	got := s.Amplitudes()
	if len(got) != len(want) {
		return Faultf("%s: state has %d amplitudes, expected %d", label, len(got), len(want))
	}
	if !equalUpToPhase(got, want) {
		return Faultf("%s: state %s does not match expected %s", label, formatState(got), formatState(want))
	}
	return nil
}

// AssertProb faults unless measuring q as 1 has probability want.
func AssertProb(q *Qubit, want float64, label string) error {
	got := q.sim.Probability(q)
	if math.Abs(got-want) > 1e-6 {
		return Faultf("%s: P(1) = %.6f, expected %.6f", label, got, want)
	}
	return nil
}

// AssertEqualOnBasis verifies that got and want act identically on every
// computational basis state of n qubits. Each differing basis state
// contributes its own fault; the faults are joined so the caller can
// report them individually.
func AssertEqualOnBasis(s *Simulator, n int, got, want Operation) error {
	var faults []error
	for k := 0; k < 1<<uint(n); k++ {
		gotAmps, err := applyOnBasis(s, n, k, got)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		wantAmps, err := applyOnBasis(s, n, k, want)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		if !equalUpToPhase(gotAmps, wantAmps) {
			faults = append(faults, Faultf(
				"on input |%s>: produced %s, expected %s",
				basisLabel(k, n), formatState(gotAmps), formatState(wantAmps)))
		}
	}
	return errors.Join(faults...)
}

func applyOnBasis(s *Simulator, n, k int, op Operation) ([]complex128, error) {
	qs := s.Reset(n)
	for i := 0; i < n; i++ {
		if k&(1<<uint(i)) != 0 {
			X(qs[i])
		}
	}
	if err := op.Apply(s, qs...); err != nil {
		return nil, err
	}
	return s.Amplitudes(), nil
}

func equalUpToPhase(got, want []complex128) bool {
	if len(got) != len(want) {
		return false
	}
	var phase complex128
	for i := range want {
		if cmplx.Abs(want[i]) > eps {
			if cmplx.Abs(got[i]) < eps {
				return false
			}
			phase = got[i] / want[i]
			break
		}
	}
	if phase == 0 {
		phase = 1
	}
	if math.Abs(cmplx.Abs(phase)-1) > 1e-6 {
		return false
	}
	for i := range want {
		if cmplx.Abs(got[i]-phase*want[i]) > 1e-6 {
			return false
		}
	}
	return true
}

func basisLabel(k, n int) string {
	bits := make([]byte, n)
	for i := 0; i < n; i++ {
		bits[i] = '0'
		if k&(1<<uint(i)) != 0 {
			bits[i] = '1'
		}
	}
	return string(bits)
}

func formatState(amps []complex128) string {
	out := "["
	for i, a := range amps {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%.3f%+.3fi", real(a), imag(a))
	}
	return out + "]"
}
