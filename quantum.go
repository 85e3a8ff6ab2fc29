package main

import (
	"fmt"
	"math"
	"math/cmplx"
)

type Complex = complex128

// StateVector holds the joint amplitudes of NumQubits qubits.
// Amplitude indices are little-endian over qubit indices: bit i of an
// index is the basis value of qubit i. The same convention is assumed
// by the density reducer.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns the |0...0> basis state on numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Norm returns the 2-norm of the amplitude vector. Unitary gates keep
// this at 1; tests assert it as a post-condition.
func (s *StateVector) Norm() float64 {
	sum := 0.0
	for _, a := range s.Amplitudes {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// matrix2 is a single-qubit unitary in row-major order.
type matrix2 [2][2]Complex

// dagger returns the conjugate transpose.
func (u matrix2) dagger() matrix2 {
	return matrix2{
		{cmplx.Conj(u[0][0]), cmplx.Conj(u[1][0])},
		{cmplx.Conj(u[0][1]), cmplx.Conj(u[1][1])},
	}
}

func param(params []float64, i int) float64 {
	if i < len(params) {
		return params[i]
	}
	return 0
}

// u3Matrix is the generic single-qubit rotation; RX/RY/U2 reduce to it.
func u3Matrix(theta, phi, lambda float64) matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return matrix2{
		{c, -cmplx.Exp(complex(0, lambda)) * s},
		{cmplx.Exp(complex(0, phi)) * s, cmplx.Exp(complex(0, phi+lambda)) * c},
	}
}

// baseUnitary returns the 2x2 unitary for a gate type, dropping any
// leading control ("CX" -> X). Unknown types return false.
func baseUnitary(gateType string, params []float64) (matrix2, bool) {
	h := complex(1.0/math.Sqrt2, 0)
	switch gateType {
	case "I", "ID":
		return matrix2{{1, 0}, {0, 1}}, true
	case "H", "CH":
		return matrix2{{h, h}, {h, -h}}, true
	case "X", "CX":
		return matrix2{{0, 1}, {1, 0}}, true
	case "Y":
		return matrix2{{0, -1i}, {1i, 0}}, true
	case "Z", "CZ":
		return matrix2{{1, 0}, {0, -1}}, true
	case "S":
		return matrix2{{1, 0}, {0, 1i}}, true
	case "T":
		return matrix2{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}, true
	case "RX", "CRX":
		theta := param(params, 0)
		c := complex(math.Cos(theta/2), 0)
		js := complex(0, -math.Sin(theta/2))
		return matrix2{{c, js}, {js, c}}, true
	case "RY", "CRY":
		theta := param(params, 0)
		c := complex(math.Cos(theta/2), 0)
		sn := complex(math.Sin(theta/2), 0)
		return matrix2{{c, -sn}, {sn, c}}, true
	case "RZ", "CRZ":
		theta := param(params, 0)
		ph := cmplx.Exp(complex(0, theta/2))
		return matrix2{{cmplx.Conj(ph), 0}, {0, ph}}, true
	case "P", "U1", "CU1", "CP":
		theta := param(params, 0)
		return matrix2{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}, true
	case "U2":
		return u3Matrix(math.Pi/2, param(params, 0), param(params, 1)), true
	case "U3":
		return u3Matrix(param(params, 0), param(params, 1), param(params, 2)), true
	}
	return matrix2{}, false
}

// applySingle applies u to qubit q, identity on every other qubit.
func (s *StateVector) applySingle(q int, u matrix2) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = u[0][0]*a + u[0][1]*b
			s.Amplitudes[j] = u[1][0]*a + u[1][1]*b
		}
	}
}

// applyControlled applies u to the target qubit on the subspace where
// the control qubit is |1>.
func (s *StateVector) applyControlled(control, target int, u matrix2) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = u[0][0]*a + u[0][1]*b
			s.Amplitudes[j] = u[1][0]*a + u[1][1]*b
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// ApplyGate applies one gate to the state in place. The gate's qubit
// indices and arity are validated against the state; violations come
// back as *MalformedCircuitError with step context left for the caller.
func (s *StateVector) ApplyGate(g Gate) error {
	if g.Target < 0 || g.Target >= s.NumQubits {
		return &MalformedCircuitError{
			Step:   -1,
			Reason: fmt.Sprintf("gate %s targets qubit %d outside [0,%d)", g.Type, g.Target, s.NumQubits),
		}
	}

	if g.Arity() == 2 {
		if g.Control < 0 || g.Control >= s.NumQubits {
			return &MalformedCircuitError{
				Step:   -1,
				Reason: fmt.Sprintf("two-qubit gate %s has control qubit %d outside [0,%d)", g.Type, g.Control, s.NumQubits),
			}
		}
		if g.Control == g.Target {
			return &MalformedCircuitError{
				Step:   -1,
				Reason: fmt.Sprintf("two-qubit gate %s has identical control and target qubit %d", g.Type, g.Target),
			}
		}
		if g.Type == "SWAP" {
			s.applySWAP(g.Control, g.Target)
			return nil
		}
		u, ok := baseUnitary(g.Type, g.Params)
		if !ok {
			return &MalformedCircuitError{Step: -1, Reason: "unknown gate type " + g.Type}
		}
		if g.IsDagger {
			u = u.dagger()
		}
		s.applyControlled(g.Control, g.Target, u)
		return nil
	}

	if g.Control >= 0 {
		return &MalformedCircuitError{
			Step:   -1,
			Reason: "single-qubit gate " + g.Type + " carries a control qubit",
		}
	}
	u, ok := baseUnitary(g.Type, g.Params)
	if !ok {
		return &MalformedCircuitError{Step: -1, Reason: "unknown gate type " + g.Type}
	}
	if g.IsDagger {
		u = u.dagger()
	}
	s.applySingle(g.Target, u)
	return nil
}
