package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusSpheres focus = iota
	focusQASM
	focusPresets
)

// playInterval is the autoplay frame duration.
const playInterval = 700 * time.Millisecond

// tickMsg advances the animation while autoplay is on.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model represents the TUI application state.
type Model struct {
	circuit  Circuit
	trace    *AnimationTrace
	runErr   error
	stepIdx  int
	playing  bool
	width    int
	height   int
	focus    focus
	lastQASM string

	qasmEditor textarea.Model
	statusMsg  string // transient status message

	// Preset picker state
	presetCat  int
	presetItem int
}

func initialModel() Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		qasmEditor: ta,
		focus:      focusSpheres,
	}

	// Start on the Bell pair example so the first frame shows something.
	m.loadQASM(presetMenu[1].items[0].qasm)
	return m
}

// loadQASM replaces the editor contents and re-runs the trace.
func (m *Model) loadQASM(qasm string) {
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.resimulate()
}

// resimulate parses the editor QASM into a circuit and recomputes the
// animation trace. On failure the previous trace is kept on screen and
// the error is shown instead.
func (m *Model) resimulate() {
	var c Circuit
	if err := c.ParseQASM(m.qasmEditor.Value()); err != nil {
		m.runErr = err
		return
	}
	m.circuit = c

	trace, err := RunTrace(&c)
	if err != nil {
		m.runErr = err
		return
	}
	m.runErr = nil
	m.trace = trace
	if m.stepIdx >= len(trace.Steps) {
		m.stepIdx = len(trace.Steps) - 1
	}
}

// parseQASMInput re-runs the simulation when the editor text changed.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm != m.lastQASM {
		m.lastQASM = qasm
		m.stepIdx = 0
		m.playing = false
		m.resimulate()
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		editorH := max(msg.Height-14, 4)
		m.qasmEditor.SetHeight(editorH)

	case tickMsg:
		if m.playing && m.trace != nil {
			m.stepIdx++
			if m.stepIdx >= len(m.trace.Steps) {
				m.stepIdx = 0
			}
			cmds = append(cmds, tickCmd())
		}

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusSpheres:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "p":
				m.focus = focusPresets
				m.presetCat = 0
				m.presetItem = 0
			case "ctrl+r":
				m.stepIdx = 0
				m.playing = false
				m.resimulate()
				m.statusMsg = "Re-ran circuit"
			case " ":
				if m.trace != nil {
					m.playing = !m.playing
					if m.playing {
						cmds = append(cmds, tickCmd())
					}
				}
			case "left", "h":
				m.playing = false
				if m.stepIdx > 0 {
					m.stepIdx--
				}
			case "right", "l":
				m.playing = false
				if m.trace != nil && m.stepIdx < len(m.trace.Steps)-1 {
					m.stepIdx++
				}
			case "0", "home":
				m.playing = false
				m.stepIdx = 0
			case "$", "end":
				m.playing = false
				if m.trace != nil {
					m.stepIdx = len(m.trace.Steps) - 1
				}
			}

		case focusPresets:
			switch key {
			case "esc":
				m.focus = focusSpheres
			case "up", "k":
				if m.presetItem > 0 {
					m.presetItem--
				}
			case "down", "j":
				cat := presetMenu[m.presetCat]
				if m.presetItem < len(cat.items)-1 {
					m.presetItem++
				}
			case "left", "h":
				if m.presetCat > 0 {
					m.presetCat--
					m.presetItem = 0
				}
			case "right", "l":
				if m.presetCat < len(presetMenu)-1 {
					m.presetCat++
					m.presetItem = 0
				}
			case "enter":
				item := presetMenu[m.presetCat].items[m.presetItem]
				m.stepIdx = 0
				m.playing = false
				m.loadQASM(item.qasm)
				m.statusMsg = "Loaded " + item.name
				m.focus = focusSpheres
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusSpheres
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	traceWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	traceHeight := max(m.height-controlsHeight-2, 6)

	tracePanel := m.renderTracePanel(traceWidth, traceHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, traceHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, tracePanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusPresets {
		menuBox := m.renderPresetMenu()
		frame = overlayAt(frame, menuBox, 2, 2)
	}

	return frame
}
