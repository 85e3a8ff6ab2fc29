package main

import (
	"errors"
	"fmt"
	"math/cmplx"
	"slices"
)

// MaxQubits caps the simulation size; above it a run fails fast with
// CapacityExceededError instead of attempting to allocate 2^n amplitudes.
const MaxQubits = 9

// MalformedCircuitError reports a gate that references a qubit outside
// the register or whose arity does not match its unitary. Step is the
// 1-based trace step of the offending gate, or -1 when unknown.
type MalformedCircuitError struct {
	Step   int
	Reason string
}

func (e *MalformedCircuitError) Error() string {
	if e.Step >= 0 {
		return fmt.Sprintf("malformed circuit at step %d: %s", e.Step, e.Reason)
	}
	return "malformed circuit: " + e.Reason
}

// CapacityExceededError reports a qubit count above MaxQubits.
type CapacityExceededError struct {
	Requested int
	Max       int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("too many qubits for visualization: maximum supported %d, requested %d", e.Max, e.Requested)
}

// NumericalAnomalyError reports a density matrix or coordinate that
// violates its invariant beyond tolerance. The computation is
// deterministic, so this recurs on retry and is never absorbed.
type NumericalAnomalyError struct {
	Step   int
	Qubit  int
	Reason string
}

func (e *NumericalAnomalyError) Error() string {
	return fmt.Sprintf("numerical anomaly at step %d, qubit %d: %s", e.Step, e.Qubit, e.Reason)
}

// BlochPoint is one qubit's coordinate at one step, tagged with its
// display label.
type BlochPoint struct {
	Qubit int
	Label string
	Coord BlochCoordinate
}

// TraceStep is one frame of the animation: the gate that produced it
// (empty for the initial frame) and every qubit's coordinate after it.
type TraceStep struct {
	Step     int
	GateName string
	Targets  []int
	Points   []BlochPoint
}

// Caption returns the step's display caption.
func (ts TraceStep) Caption() string {
	if ts.GateName == "" {
		return "Initial State"
	}
	s := ts.GateName
	for i, q := range ts.Targets {
		if i == 0 {
			s += " "
		} else {
			s += ", "
		}
		s += fmt.Sprintf("q[%d]", q)
	}
	return s
}

// AnimationTrace is the completed step-by-step Bloch trajectory of a
// circuit run: one frame per gate plus the initial frame.
type AnimationTrace struct {
	NumQubits int
	Steps     []TraceStep
}

// blochSnapshot projects every qubit of the current state and checks
// the reduced-density invariants.
func blochSnapshot(state *StateVector, step int) ([]BlochPoint, error) {
	points := make([]BlochPoint, state.NumQubits)
	for q := 0; q < state.NumQubits; q++ {
		rho, err := state.ReducedDensity(q)
		if err != nil {
			return nil, err
		}
		if tr := rho.Trace(); cmplx.Abs(tr-1) > blochTolerance {
			return nil, &NumericalAnomalyError{
				Step:   step,
				Qubit:  q,
				Reason: fmt.Sprintf("reduced density trace %v, want 1", tr),
			}
		}
		coord, ok := clampUnitBall(BlochProject(rho))
		if !ok {
			return nil, &NumericalAnomalyError{
				Step:   step,
				Qubit:  q,
				Reason: fmt.Sprintf("coordinate norm %g exceeds unit ball beyond %g", coord.Norm(), blochTolerance),
			}
		}
		points[q] = BlochPoint{
			Qubit: q,
			Label: fmt.Sprintf("Qubit %d", q),
			Coord: coord,
		}
	}
	return points, nil
}

// RunTrace simulates the circuit gate by gate and records every qubit's
// Bloch coordinate after each gate. The state evolves cumulatively (one
// ApplyGate per gate, never re-simulated from scratch), so a run costs
// O(m * 2^n). On any failure no partial trace is returned.
func RunTrace(c *Circuit) (*AnimationTrace, error) {
	numQubits := c.NumQubits
	if numQubits < 1 {
		numQubits = 1
	}
	if numQubits > MaxQubits {
		return nil, &CapacityExceededError{Requested: numQubits, Max: MaxQubits}
	}

	gates := slices.Clone(c.Gates)
	slices.SortStableFunc(gates, func(a, b Gate) int {
		return a.Step - b.Step
	})

	state := NewStateVector(numQubits)
	trace := &AnimationTrace{NumQubits: numQubits}

	// Frame 0: all qubits at the |0> pole before any gate.
	points, err := blochSnapshot(state, 0)
	if err != nil {
		return nil, err
	}
	trace.Steps = append(trace.Steps, TraceStep{Step: 0, Points: points})

	for k, gate := range gates {
		if err := state.ApplyGate(gate); err != nil {
			var malformed *MalformedCircuitError
			if errors.As(err, &malformed) {
				malformed.Step = k + 1
			}
			return nil, err
		}
		points, err := blochSnapshot(state, k+1)
		if err != nil {
			return nil, err
		}
		trace.Steps = append(trace.Steps, TraceStep{
			Step:     k + 1,
			GateName: gate.DisplayName(),
			Targets:  gate.Qubits(),
			Points:   points,
		})
	}

	return trace, nil
}
