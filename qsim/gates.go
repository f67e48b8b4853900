package qsim

import "math"

// Gate matrices use the computational basis {|0>, |1>}.
var (
	matX = [2][2]complex128{{0, 1}, {1, 0}}
	matY = [2][2]complex128{{0, complex(0, -1)}, {complex(0, 1), 0}}
	matZ = [2][2]complex128{{1, 0}, {0, -1}}
	matH = [2][2]complex128{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	matS = [2][2]complex128{{1, 0}, {0, complex(0, 1)}}
	matT = [2][2]complex128{{1, 0}, {0, expi(math.Pi / 4)}}
)

// X applies the Pauli X (bit flip) gate.
func X(q *Qubit) { q.sim.apply1(q, matX) }

// Y applies the Pauli Y gate.
func Y(q *Qubit) { q.sim.apply1(q, matY) }

// Z applies the Pauli Z (phase flip) gate.
func Z(q *Qubit) { q.sim.apply1(q, matZ) }

// H applies the Hadamard gate.
func H(q *Qubit) { q.sim.apply1(q, matH) }

// S applies the phase gate diag(1, i).
func S(q *Qubit) { q.sim.apply1(q, matS) }

// T applies the pi/8 gate diag(1, e^{i pi/4}).
func T(q *Qubit) { q.sim.apply1(q, matT) }

// Rx rotates q around the X axis by theta radians.
func Rx(theta float64, q *Qubit) {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	q.sim.apply1(q, [2][2]complex128{{c, s}, {s, c}})
}

// Ry rotates q around the Y axis by theta radians.
func Ry(theta float64, q *Qubit) {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	q.sim.apply1(q, [2][2]complex128{{c, -s}, {s, c}})
}

// Rz rotates q around the Z axis by theta radians.
func Rz(theta float64, q *Qubit) {
	q.sim.apply1(q, [2][2]complex128{{expi(-theta / 2), 0}, {0, expi(theta / 2)}})
}

// CNOT flips target wherever control is 1.
func CNOT(control, target *Qubit) {
	control.sim.applyControlled(control, target, matX)
}

// CZ applies a phase of -1 wherever both qubits are 1.
func CZ(control, target *Qubit) {
	control.sim.applyControlled(control, target, matZ)
}

// SWAP exchanges the states of two qubits.
func SWAP(a, b *Qubit) {
	s := a.sim
	s.check(a)
	s.check(b)
	if a.idx == b.idx {
		return
	}
	maskA := 1 << uint(a.idx)
	maskB := 1 << uint(b.idx)
	for i := range s.amps {
		// Visit each (01, 10) pair once.
		if i&maskA != 0 && i&maskB == 0 {
			j := (i &^ maskA) | maskB
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// M measures q in the computational basis and returns 0 or 1.
func M(q *Qubit) int {
	if q == nil || q.sim == nil {
		panic(Faultf("qsim: measurement of a nil qubit"))
	}
	return q.sim.Measure(q)
}

func (s *Simulator) apply1(q *Qubit, m [2][2]complex128) {
	s.check(q)
	step := 1 << uint(q.idx)
	for base := 0; base < len(s.amps); base += step * 2 {
		for i := base; i < base+step; i++ {
			a0, a1 := s.amps[i], s.amps[i+step]
			s.amps[i] = m[0][0]*a0 + m[0][1]*a1
			s.amps[i+step] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

func (s *Simulator) applyControlled(control, target *Qubit, m [2][2]complex128) {
	s.check(control)
	s.check(target)
	if control.idx == target.idx {
		panic(Faultf("qsim: control and target must differ"))
	}
	cMask := 1 << uint(control.idx)
	tMask := 1 << uint(target.idx)
	for i := range s.amps {
		// Visit each target pair once, control bit set, target bit clear.
		if i&cMask == 0 || i&tMask != 0 {
			continue
		}
		j := i | tMask
		a0, a1 := s.amps[i], s.amps[j]
		s.amps[i] = m[0][0]*a0 + m[0][1]*a1
		s.amps[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func expi(theta float64) complex128 {
	return complex(math.Cos(theta), math.Sin(theta))
}

func sqrt(v float64) float64 {
	return math.Sqrt(v)
}
