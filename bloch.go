package main

import (
	"fmt"
	"math"
	"math/cmplx"
)

// blochTolerance is how far past the unit sphere a projected coordinate
// may drift before it is treated as a numerical anomaly instead of
// being clamped.
const blochTolerance = 1e-6

// ReducedDensity is the 2x2 marginal density matrix of a single qubit,
// Hermitian with unit trace.
type ReducedDensity [2][2]Complex

// Trace returns rho00 + rho11.
func (rho ReducedDensity) Trace() Complex {
	return rho[0][0] + rho[1][1]
}

// ReducedDensity computes the marginal density matrix of one qubit by
// tracing out the rest: for every setting of the other bits it
// accumulates a_i * conj(a_j) over the index pair (i, j) that differs
// only at the target bit. With one qubit this degenerates to |psi><psi|.
func (s *StateVector) ReducedDensity(qubit int) (ReducedDensity, error) {
	if qubit < 0 || qubit >= s.NumQubits {
		return ReducedDensity{}, &MalformedCircuitError{
			Step:   -1,
			Reason: fmt.Sprintf("reduction requested for qubit %d outside [0,%d)", qubit, s.NumQubits),
		}
	}

	var rho ReducedDensity
	n := len(s.Amplitudes)
	bit := 1 << qubit
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0 := s.Amplitudes[i]
		a1 := s.Amplitudes[j]
		rho[0][0] += a0 * cmplx.Conj(a0)
		rho[0][1] += a0 * cmplx.Conj(a1)
		rho[1][0] += a1 * cmplx.Conj(a0)
		rho[1][1] += a1 * cmplx.Conj(a1)
	}
	return rho, nil
}

// BlochCoordinate is a point in or on the unit ball; the surface holds
// pure single-qubit states, the interior entangled/mixed marginals.
type BlochCoordinate struct {
	X, Y, Z float64
}

func (c BlochCoordinate) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// BlochProject maps a reduced density matrix to Pauli expectation
// values:
//
//	x = 2*Re(rho01)    <sigma_x>
//	y = -2*Im(rho01)   <sigma_y>, with rho01 = a0*conj(a1)
//	z = Re(rho00 - rho11)
//
// The y sign is fixed so that H followed by S on |0> lands on (0,1,0).
func BlochProject(rho ReducedDensity) BlochCoordinate {
	return BlochCoordinate{
		X: 2 * real(rho[0][1]),
		Y: -2 * imag(rho[0][1]),
		Z: real(rho[0][0] - rho[1][1]),
	}
}

// clampUnitBall pulls a coordinate that drifted slightly past the unit
// sphere back onto it. Drift beyond blochTolerance is not absorbed;
// ok=false tells the caller to report an anomaly rather than hide it.
func clampUnitBall(c BlochCoordinate) (BlochCoordinate, bool) {
	norm := c.Norm()
	if norm <= 1 {
		return c, true
	}
	if norm > 1+blochTolerance {
		return c, false
	}
	return BlochCoordinate{X: c.X / norm, Y: c.Y / norm, Z: c.Z / norm}, true
}

// GridDimensions returns (rows, cols) for laying out numQubits Bloch
// spheres, preferring wider layouts.
func GridDimensions(numQubits int) (rows, cols int) {
	switch {
	case numQubits <= 0:
		return 1, 1
	case numQubits <= 2:
		return 1, numQubits
	case numQubits <= 4:
		return 2, 2
	case numQubits <= 6:
		return 2, 3
	case numQubits <= 9:
		return 3, 3
	default:
		rows = int(math.Ceil(math.Sqrt(float64(numQubits))))
		cols = int(math.Ceil(float64(numQubits) / float64(rows)))
		return rows, cols
	}
}
