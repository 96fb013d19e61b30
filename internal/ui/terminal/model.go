// Package terminal renders a breathing session in the terminal.
package terminal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"respira/internal/core/breathing"
	"respira/internal/core/model"
	"respira/internal/ui/animation"
	"respira/internal/ui/session"
)

// Options configures the terminal session.
type Options struct {
	// MaxCycles stops the session after that many cycles; zero means never.
	MaxCycles int
	// AutoStart begins the countdown without waiting for a key press.
	AutoStart bool
}

type eventMsg breathing.Event

type closedMsg struct{}

// Model is the bubbletea model of a breathing session.
type Model struct {
	engine   *breathing.Engine
	events   <-chan breathing.Event
	options  Options
	snapshot breathing.Snapshot
	err      error
	quitting bool
}

// NewModel subscribes to engine and returns the model.
func NewModel(engine *breathing.Engine, options Options) Model {
	return Model{
		engine:   engine,
		events:   engine.Subscribe(16),
		options:  options,
		snapshot: engine.Snapshot(),
	}
}

// Snapshot returns the last state the model rendered.
func (m Model) Snapshot() breathing.Snapshot {
	return m.snapshot
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	if m.options.AutoStart {
		m.engine.Start()
	}
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan breathing.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

// Update handles key presses and engine events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case eventMsg:
		m.snapshot = msg.Snapshot
		if msg.Type == breathing.EventSessionEnded || msg.Snapshot.Ended {
			m.quitting = true
			return m, tea.Quit
		}
		// Any event carries the cycle count; cycle_complete itself may be dropped.
		if m.reachedCycleLimit(msg.Snapshot) {
			return m.stop()
		}
		return m, waitForEvent(m.events)
	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter", "p":
		m.engine.Toggle()
	case "q", "esc", "ctrl+c":
		return m.stop()
	case "1", "2", "3", "4":
		index := int(msg.String()[0] - '1')
		technique := model.MustLookup(model.TechniqueIDs[index])
		if err := m.engine.ReplaceTechnique(technique); err != nil {
			m.err = err
		}
	}
	m.snapshot = m.engine.Snapshot()
	return m, nil
}

// stop ends the session and quits on the engine's state rather than on the
// session-ended event, which a full subscriber channel drops.
func (m Model) stop() (tea.Model, tea.Cmd) {
	m.engine.Stop()
	m.snapshot = m.engine.Snapshot()
	if m.snapshot.Ended {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) reachedCycleLimit(snapshot breathing.Snapshot) bool {
	return m.options.MaxCycles > 0 && snapshot.CyclesCompleted >= m.options.MaxCycles
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f172a")).MarginBottom(1)
	dotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cbd5e1"))
	activeDot  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0ea5e9")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
)

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.snapshot
	technique, _ := model.Lookup(snap.TechniqueID)
	style := animation.StyleFor(snap.Phase.Type, snap.Active)

	var b strings.Builder
	b.WriteString(titleStyle.Render(technique.Name))
	b.WriteString("\n")
	b.WriteString(renderDots(snap))
	b.WriteString("\n\n")

	circle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(animation.Hex(style.Stroke))).
		Background(lipgloss.Color(animation.Hex(style.Fill))).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Align(lipgloss.Center).
		Width(circleWidth(style.Scale)).
		Padding(1, 2)

	body := session.InstructionText(snap)
	if countdown := session.CountdownText(snap); countdown != "" {
		body += "\n" + countdown
	}
	b.WriteString(circle.Render(body))
	b.WriteString("\n")

	if cycles := session.CyclesText(snap); cycles != "" {
		b.WriteString("\n" + cycles)
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()))
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("espacio: %s · 1-4: cambiar técnica · q: terminar", strings.ToLower(session.ToggleText(snap)))))
	b.WriteString("\n")
	return b.String()
}

func renderDots(snap breathing.Snapshot) string {
	dots := make([]string, 0, snap.PhaseCount)
	for index := 0; index < snap.PhaseCount; index++ {
		if index == snap.PhaseIndex {
			dots = append(dots, activeDot.Render("━━━"))
			continue
		}
		dots = append(dots, dotStyle.Render("•"))
	}
	return strings.Join(dots, " ")
}

func circleWidth(scale float32) int {
	return int(28 * scale)
}
