package main

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestParseQASMGates(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];

h q[0];
cx q[0], q[1];
rx(pi/2) q[2];
sdg q[1];
crz(pi/4) q[1], q[2];`

	c := Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}

	fmt.Printf("Parsed %d gates:\n", len(c.Gates))
	for _, g := range c.Gates {
		fmt.Printf("  Step %d: Type=%s Target=%d Control=%d Dagger=%v Params=%v\n",
			g.Step, g.Type, g.Target, g.Control, g.IsDagger, g.Params)
	}

	if c.NumQubits != 3 {
		t.Errorf("NumQubits = %d, want 3", c.NumQubits)
	}
	if len(c.Gates) != 5 {
		t.Fatalf("expected 5 gates, got %d", len(c.Gates))
	}

	g := c.Gates[0]
	if g.Type != "H" || g.Target != 0 || g.Control != -1 {
		t.Errorf("gate 0: %+v", g)
	}
	g = c.Gates[1]
	if g.Type != "CX" || g.Target != 1 || g.Control != 0 {
		t.Errorf("gate 1: %+v", g)
	}
	g = c.Gates[2]
	if g.Type != "RX" || g.Target != 2 || len(g.Params) != 1 || math.Abs(g.Params[0]-math.Pi/2) > 1e-10 {
		t.Errorf("gate 2: %+v", g)
	}
	g = c.Gates[3]
	if g.Type != "S" || !g.IsDagger || g.Target != 1 {
		t.Errorf("gate 3: %+v", g)
	}
	g = c.Gates[4]
	if g.Type != "CRZ" || g.Control != 1 || g.Target != 2 || math.Abs(g.Params[0]-math.Pi/4) > 1e-10 {
		t.Errorf("gate 4: %+v", g)
	}

	// One step per instruction, in source order
	for i, g := range c.Gates {
		if g.Step != i {
			t.Errorf("gate %d at step %d, want %d", i, g.Step, i)
		}
	}
}

func TestParseQASMSkipsNonUnitaryLines(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
barrier q[0], q[1];
measure q[0] -> c[0];
if (c[0]==1) x q[1];
reset q[1];
x q[1];`

	c := Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}

	if len(c.Gates) != 2 {
		t.Fatalf("expected 2 unitary gates, got %d", len(c.Gates))
	}
	if c.Gates[0].Type != "H" || c.Gates[1].Type != "X" {
		t.Errorf("gates = %s, %s; want H, X", c.Gates[0].Type, c.Gates[1].Type)
	}
}

func TestQASMRoundTrip(t *testing.T) {
	c := Circuit{NumQubits: 2}
	c.AddGate("H", 0, 0)
	c.AddParameterizedGate("RX", 0, 1, []float64{math.Pi / 2})
	c.AddParameterizedGate("RY", 1, 2, []float64{3 * math.Pi / 4})
	c.AddDaggerGate("T", 1, 3)
	c.AddGate("CX", 1, 4, 0)

	qasm := c.ToQASM()
	fmt.Printf("Round-trip QASM output:\n%s\n", qasm)

	if !strings.Contains(qasm, "rx(pi/2) q[0];") {
		t.Errorf("expected 'rx(pi/2) q[0];' in QASM, got:\n%s", qasm)
	}
	if !strings.Contains(qasm, "ry(3*pi/4) q[1];") {
		t.Errorf("expected 'ry(3*pi/4) q[1];' in QASM, got:\n%s", qasm)
	}
	if !strings.Contains(qasm, "tdg q[1];") {
		t.Errorf("expected 'tdg q[1];' in QASM, got:\n%s", qasm)
	}
	if !strings.Contains(qasm, "cx q[0], q[1];") {
		t.Errorf("expected 'cx q[0], q[1];' in QASM, got:\n%s", qasm)
	}

	c2 := Circuit{}
	if err := c2.ParseQASM(qasm); err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if len(c2.Gates) != len(c.Gates) {
		t.Fatalf("round-trip: expected %d gates, got %d", len(c.Gates), len(c2.Gates))
	}
	for i := range c.Gates {
		a, b := c.Gates[i], c2.Gates[i]
		if a.Type != b.Type || a.Target != b.Target || a.Control != b.Control || a.IsDagger != b.IsDagger {
			t.Errorf("gate %d: %+v != %+v", i, a, b)
		}
		for p := range a.Params {
			if math.Abs(a.Params[p]-b.Params[p]) > 1e-10 {
				t.Errorf("gate %d param %d: %g != %g", i, p, a.Params[p], b.Params[p])
			}
		}
	}
}

func TestGateArityAndQubits(t *testing.T) {
	tests := []struct {
		gate   Gate
		arity  int
		qubits []int
	}{
		{Gate{Type: "H", Target: 0, Control: -1}, 1, []int{0}},
		{Gate{Type: "RX", Target: 2, Control: -1}, 1, []int{2}},
		{Gate{Type: "CX", Target: 1, Control: 0}, 2, []int{0, 1}},
		{Gate{Type: "SWAP", Target: 2, Control: 1}, 2, []int{1, 2}},
	}

	for _, tt := range tests {
		if got := tt.gate.Arity(); got != tt.arity {
			t.Errorf("%s: arity = %d, want %d", tt.gate.Type, got, tt.arity)
		}
		got := tt.gate.Qubits()
		if len(got) != len(tt.qubits) {
			t.Errorf("%s: qubits = %v, want %v", tt.gate.Type, got, tt.qubits)
			continue
		}
		for i := range got {
			if got[i] != tt.qubits[i] {
				t.Errorf("%s: qubits = %v, want %v", tt.gate.Type, got, tt.qubits)
				break
			}
		}
	}
}

func TestGateDisplayName(t *testing.T) {
	tests := []struct {
		gate Gate
		want string
	}{
		{Gate{Type: "H"}, "H"},
		{Gate{Type: "S", IsDagger: true}, "S†"},
		{Gate{Type: "RX", Params: []float64{math.Pi / 2}}, "RX(pi/2)"},
		{Gate{Type: "U3", Params: []float64{0.5, 1.5, math.Pi}}, "U3(0.5, 1.5, pi)"},
	}

	for _, tt := range tests {
		if got := tt.gate.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.gate, got, tt.want)
		}
	}
}
