package main

import (
	"fmt"
	"strings"
)

// presetItem is a single example circuit in the preset picker.
type presetItem struct {
	name string
	desc string
	qasm string
}

// presetCategory groups related presets under a tab.
type presetCategory struct {
	name  string
	items []presetItem
}

// presetMenu defines the example-circuit picker categories and items.
var presetMenu = []presetCategory{
	{
		name: "Single Qubit",
		items: []presetItem{
			{
				name: "Bit Flip",
				desc: "X sends |0> to the south pole",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nx q[0];\n",
			},
			{
				name: "Superposition",
				desc: "H sends |0> to +x",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nh q[0];\n",
			},
			{
				name: "Y Axis",
				desc: "H then S lands on +y",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nh q[0];\ns q[0];\n",
			},
			{
				name: "Rotation Sweep",
				desc: "quarter turns around x",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nrx(pi/4) q[0];\nrx(pi/4) q[0];\nrx(pi/4) q[0];\nrx(pi/4) q[0];\n",
			},
		},
	},
	{
		name: "Entanglement",
		items: []presetItem{
			{
				name: "Bell Pair",
				desc: "both vectors collapse to the origin",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[2];\n\nh q[0];\ncx q[0], q[1];\n",
			},
			{
				name: "GHZ Triple",
				desc: "three-way entanglement",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[3];\n\nh q[0];\ncx q[0], q[1];\ncx q[1], q[2];\n",
			},
			{
				name: "Make and Break",
				desc: "entangle, then undo it",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[2];\n\nh q[0];\ncx q[0], q[1];\ncx q[0], q[1];\nh q[0];\n",
			},
		},
	},
	{
		name: "Interference",
		items: []presetItem{
			{
				name: "H-Z-H",
				desc: "phase flip becomes bit flip",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nh q[0];\nz q[0];\nh q[0];\n",
			},
			{
				name: "Round Trip",
				desc: "H undoes H",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nh q[0];\nh q[0];\n",
			},
			{
				name: "Phase Walk",
				desc: "T steps around the equator",
				qasm: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n\nqreg q[1];\n\nh q[0];\nt q[0];\nt q[0];\nt q[0];\nt q[0];\n",
			},
		},
	},
}

// renderPresetMenu renders the floating example-circuit picker popup.
func (m Model) renderPresetMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Load Example"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range presetMenu {
		name := " " + cat.name + " "
		if i == m.presetCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(presetMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 46)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := presetMenu[m.presetCat]
	for i, item := range cat.items {
		if i == m.presetItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
		}
		sb.WriteString(dimStyle.Render(item.desc))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Load  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
