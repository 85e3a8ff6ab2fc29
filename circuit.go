package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// Gate is a single unitary operation placed on the circuit timeline.
type Gate struct {
	Type     string
	Target   int
	Control  int // -1 if not a controlled gate
	Step     int // position in circuit timeline
	Params   []float64
	IsDagger bool // adjoint of the named gate
}

// twoQubitGates lists gate types whose unitary acts on a control/target pair.
var twoQubitGates = map[string]bool{
	"CX": true, "CZ": true, "CH": true, "SWAP": true,
	"CRX": true, "CRY": true, "CRZ": true, "CU1": true, "CP": true,
}

// Arity returns how many qubits the gate's unitary acts on.
func (g Gate) Arity() int {
	if twoQubitGates[g.Type] {
		return 2
	}
	return 1
}

// Qubits returns the qubit indices the gate touches, control first.
func (g Gate) Qubits() []int {
	if g.Arity() == 2 {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

// DisplayName returns the caption name for the gate, e.g. "S†" or "RX(pi/2)".
func (g Gate) DisplayName() string {
	name := g.Type
	if g.IsDagger {
		name += "†"
	}
	if len(g.Params) > 0 {
		parts := make([]string, len(g.Params))
		for i, p := range g.Params {
			parts[i] = formatParam(p)
		}
		name += "(" + strings.Join(parts, ", ") + ")"
	}
	return name
}

// Circuit is an ordered sequence of gates over NumQubits qubits.
// It is built up front (by hand or from QASM) and consumed read-only
// by the trace runner.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a gate to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddParameterizedGate appends a parameterized gate to the circuit.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
		Params:  params,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddDaggerGate appends the adjoint of the named gate to the circuit.
func (c *Circuit) AddDaggerGate(gateType string, target, step int) {
	c.Gates = append(c.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Control:  -1,
		Step:     step,
		IsDagger: true,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	maxQubit := -1
	for _, gate := range c.Gates {
		maxQubit = max(maxQubit, gate.Target, gate.Control)
	}
	numQubits := max(maxQubit+1, c.NumQubits, 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", numQubits)

	for step := 0; step < c.MaxSteps; step++ {
		for _, gate := range c.Gates {
			if gate.Step != step {
				continue
			}
			name := strings.ToLower(gate.Type)
			if gate.IsDagger {
				name += "dg"
			}
			switch {
			case gate.Control >= 0 && len(gate.Params) > 0:
				fmt.Fprintf(&sb, "%s(%s) q[%d], q[%d];\n", name, formatParam(gate.Params[0]), gate.Control, gate.Target)
			case gate.Control >= 0:
				fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", name, gate.Control, gate.Target)
			case len(gate.Params) > 0:
				parts := make([]string, len(gate.Params))
				for i, p := range gate.Params {
					parts[i] = formatParam(p)
				}
				fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, strings.Join(parts, ", "), gate.Target)
			default:
				fmt.Fprintf(&sb, "%s q[%d];\n", name, gate.Target)
			}
		}
	}

	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it.
// Only the unitary gate set is recognized; measurement, barriers and
// classical control are skipped, as are lines that match nothing.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	step := 0

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") ||
			strings.HasPrefix(line, "measure") ||
			strings.HasPrefix(line, "reset") ||
			strings.HasPrefix(line, "if") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 2 {
				n, _ := strconv.Atoi(matches[2])
				c.NumQubits = n
			}
			continue
		}

		// Two-qubit gates: cx, cz, ch, swap
		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			qubit1, _ := strconv.Atoi(matches[2])
			qubit2, _ := strconv.Atoi(matches[3])
			c.AddGate(gateType, qubit2, step, qubit1)
			step++
			continue
		}

		// Two-qubit parameterized gates (crx, cry, crz, cu1, cp)
		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			param, _ := parseParamExpr(matches[2])
			qubit1, _ := strconv.Atoi(matches[3])
			qubit2, _ := strconv.Atoi(matches[4])
			c.AddParameterizedGate(gateType, qubit2, step, []float64{param}, qubit1)
			step++
			continue
		}

		// Single-qubit parameterized gates (rx, ry, rz, p, u1, u2, u3)
		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[3])

			var params []float64
			for _, pStr := range strings.Split(matches[2], ",") {
				if p, ok := parseParamExpr(strings.TrimSpace(pStr)); ok {
					params = append(params, p)
				}
			}

			c.AddParameterizedGate(gateType, target, step, params)
			step++
			continue
		}

		// Single-qubit gates, including dagger forms (sdg, tdg)
		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])

			if base, found := strings.CutSuffix(gateType, "DG"); found && base != "" {
				c.AddDaggerGate(base, target, step)
			} else {
				c.AddGate(gateType, target, step)
			}
			step++
			continue
		}
	}

	return nil
}
