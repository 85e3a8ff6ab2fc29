package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// ──────────────────────────── Sphere rendering ────────────────────────────

// sphere art cell kinds, composed into a rune grid before styling.
const (
	cellBlank   = ' '
	cellOutline = '·'
	cellAxisH   = '─'
	cellAxisV   = '│'
	cellCenter  = '┼'
	cellFront   = '●' // state vector tip, front hemisphere (y >= 0)
	cellBack    = '○' // state vector tip, behind the sphere (y < 0)
)

// renderSphere draws one qubit's Bloch sphere as text. The sphere is
// projected onto the x-z plane: x runs right, z runs up, and the y
// component is shown by marker depth (filled in front, hollow behind).
func renderSphere(p BlochPoint) string {
	w := sphereRadius*sphereAspect*2 + 1
	h := sphereRadius*2 + 1
	cx, cy := w/2, h/2

	grid := make([][]rune, h)
	for r := range grid {
		grid[r] = make([]rune, w)
		for c := range grid[r] {
			grid[r][c] = cellBlank
		}
	}

	// Axes through the origin
	for c := 0; c < w; c++ {
		grid[cy][c] = cellAxisH
	}
	for r := 0; r < h; r++ {
		grid[r][cx] = cellAxisV
	}
	grid[cy][cx] = cellCenter

	// Great-circle outline
	for deg := 0; deg < 360; deg += 4 {
		a := float64(deg) * math.Pi / 180
		col := cx + int(math.Round(float64(sphereRadius*sphereAspect)*math.Cos(a)))
		row := cy - int(math.Round(float64(sphereRadius)*math.Sin(a)))
		if row >= 0 && row < h && col >= 0 && col < w {
			grid[row][col] = cellOutline
		}
	}

	// State vector tip
	marker := rune(cellFront)
	if p.Coord.Y < 0 {
		marker = cellBack
	}
	mcol := cx + int(math.Round(p.Coord.X*float64(sphereRadius*sphereAspect)))
	mrow := cy - int(math.Round(p.Coord.Z*float64(sphereRadius)))
	if mrow >= 0 && mrow < h && mcol >= 0 && mcol < w {
		grid[mrow][mcol] = marker
	}

	var sb strings.Builder
	for r := range grid {
		for c := range grid[r] {
			ch := string(grid[r][c])
			switch grid[r][c] {
			case cellBlank:
				sb.WriteString(ch)
			case cellOutline:
				sb.WriteString(outlineStyle.Render(ch))
			case cellFront, cellBack:
				sb.WriteString(markerStyle.Render(ch))
			default:
				sb.WriteString(axisStyle.Render(ch))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(qubitLabelStyle.Render(padCenter(p.Label, w)))
	sb.WriteString("\n")
	coords := fmt.Sprintf("%+.2f %+.2f %+.2f", p.Coord.X, p.Coord.Y, p.Coord.Z)
	sb.WriteString(coordStyle.Render(padCenter(coords, w)))
	sb.WriteString("\n")
	norm := fmt.Sprintf("|r| %.2f", p.Coord.Norm())
	sb.WriteString(dimStyle.Render(padCenter(norm, w)))

	return sb.String()
}

// renderSphereGrid lays the per-qubit spheres out on the display grid
// for the given trace step. Spheres touched by the step's gate get the
// highlighted border.
func renderSphereGrid(step TraceStep, numQubits int) string {
	rows, cols := GridDimensions(numQubits)

	touched := make(map[int]bool, len(step.Targets))
	for _, q := range step.Targets {
		touched[q] = true
	}

	var gridRows []string
	for r := 0; r < rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			q := r*cols + c
			if q >= numQubits {
				break
			}
			art := renderSphere(step.Points[q])
			if touched[q] {
				cells = append(cells, activeSphereStyle.Render(art))
			} else {
				cells = append(cells, spherePanelStyle.Render(art))
			}
		}
		gridRows = append(gridRows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, gridRows...)
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderTracePanel renders the Bloch sphere grid with the step caption.
func (m Model) renderTracePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Bloch Spheres"))
	sb.WriteString("\n")

	if m.trace == nil || len(m.trace.Steps) == 0 {
		if m.runErr != nil {
			sb.WriteString("\n")
			sb.WriteString(errorStyle.Render(m.runErr.Error()))
		} else {
			sb.WriteString("\n")
			sb.WriteString(dimStyle.Render("No circuit yet — edit the QASM or press p for an example."))
		}
		return tracePanelStyle.Width(width).Height(height).Render(sb.String())
	}

	step := m.trace.Steps[m.stepIdx]

	caption := fmt.Sprintf("Step %d/%d  ", step.Step, len(m.trace.Steps)-1)
	sb.WriteString(dimStyle.Render(caption))
	sb.WriteString(stepCaptionStyle.Render(step.Caption()))
	if m.playing {
		sb.WriteString(dimStyle.Render("  ▶"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(renderSphereGrid(step, m.trace.NumQubits))

	if m.runErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.runErr.Error()))
	}

	return tracePanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Animate:  "))
	sb.WriteString("←→/hl Step  Space Play/Pause  0 Rewind  $ End")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("p"))
	sb.WriteString(" Examples\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  ^R Re-run  q/^C Quit")
	if m.statusMsg != "" {
		sb.WriteString("    ")
		sb.WriteString(activeGateStyle.Render(m.statusMsg))
	}

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
// It properly handles ANSI escape sequences in the background line.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
