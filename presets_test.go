package main

import (
	"math"
	"strings"
	"testing"
)

func TestPresetsParseAndRun(t *testing.T) {
	for _, cat := range presetMenu {
		for _, item := range cat.items {
			c := Circuit{}
			if err := c.ParseQASM(item.qasm); err != nil {
				t.Errorf("%s/%s: parse error: %v", cat.name, item.name, err)
				continue
			}
			if len(c.Gates) == 0 {
				t.Errorf("%s/%s: no gates parsed", cat.name, item.name)
				continue
			}

			trace, err := RunTrace(&c)
			if err != nil {
				t.Errorf("%s/%s: run error: %v", cat.name, item.name, err)
				continue
			}
			if len(trace.Steps) != len(c.Gates)+1 {
				t.Errorf("%s/%s: %d steps for %d gates", cat.name, item.name, len(trace.Steps), len(c.Gates))
			}
		}
	}
}

func TestMakeAndBreakEndsSeparable(t *testing.T) {
	// The "Make and Break" preset entangles and disentangles; the final
	// frame must show pure marginals again.
	var item presetItem
	for _, cat := range presetMenu {
		for _, it := range cat.items {
			if it.name == "Make and Break" {
				item = it
			}
		}
	}
	if item.qasm == "" {
		t.Fatal("preset not found")
	}

	c := Circuit{}
	if err := c.ParseQASM(item.qasm); err != nil {
		t.Fatalf("parse: %v", err)
	}
	trace, err := RunTrace(&c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	mid := trace.Steps[2] // after H + CX: entangled
	for q, p := range mid.Points {
		if p.Coord.Norm() > 1e-9 {
			t.Errorf("mid qubit %d: norm %g, want 0", q, p.Coord.Norm())
		}
	}
	last := trace.Steps[len(trace.Steps)-1]
	for q, p := range last.Points {
		if math.Abs(p.Coord.Norm()-1) > 1e-9 {
			t.Errorf("final qubit %d: norm %g, want 1", q, p.Coord.Norm())
		}
	}
}

func TestRenderSphereSmoke(t *testing.T) {
	coords := []BlochCoordinate{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{0, -1, 0},
		{0, 0, 0},
	}
	for _, coord := range coords {
		out := renderSphere(BlochPoint{Qubit: 0, Label: "Qubit 0", Coord: coord})
		if !strings.Contains(out, "Qubit 0") {
			t.Errorf("coord %v: label missing from sphere art", coord)
		}
		lines := strings.Split(out, "\n")
		if len(lines) != sphereRadius*2+1+3 {
			t.Errorf("coord %v: %d art lines", coord, len(lines))
		}
	}
}
