// Package simulator renders a review flow on a terminal, emulating the two
// button device the flow was designed for.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anchorageoss/visualsign-neoreview/flow"
	"github.com/anchorageoss/visualsign-neoreview/review"
)

// ErrClosed is returned when the simulator exits without a decision
var ErrClosed = errors.New("simulator closed before a decision")

// KeyMap holds the simulator key bindings
type KeyMap struct {
	Forward  key.Binding
	Backward key.Binding
	Confirm  key.Binding
	Reject   key.Binding
}

// DefaultKeyMap maps arrows to the two buttons and enter to pressing both
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Backward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "both buttons"),
		),
		Reject: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "reject"),
		),
	}
}

var screenStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1).
	Width(40)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	buttonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model wrapping a review or address flow
type Model struct {
	ctx    context.Context
	driver flow.Flow
	keys   KeyMap
	err    error
}

// New creates a simulator model for a prepared flow
func New(ctx context.Context, driver flow.Flow) Model {
	return Model{ctx: ctx, driver: driver, keys: DefaultKeyMap()}
}

// Err returns the error that stopped the simulator, if any
func (m Model) Err() error {
	return m.err
}

// Driver returns the wrapped flow
func (m Model) Driver() flow.Flow {
	return m.driver
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var ev flow.Event
		switch {
		case key.Matches(msg, m.keys.Forward):
			ev = flow.EventForward
		case key.Matches(msg, m.keys.Backward):
			ev = flow.EventBackward
		case key.Matches(msg, m.keys.Confirm):
			ev = flow.EventConfirm
		case key.Matches(msg, m.keys.Reject):
			ev = flow.EventReject
		default:
			return m, nil
		}
		if err := m.driver.Handle(m.ctx, ev); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.driver.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return warningStyle.Render("error: "+m.err.Error()) + "\n"
	}
	if m.driver.Done() {
		return fmt.Sprintf("%s\n", m.driver.Result().Outcome)
	}
	return Render(m.driver.Screen()) + "\n" + m.help() + "\n"
}

func (m Model) help() string {
	bindings := []key.Binding{m.keys.Backward, m.keys.Forward, m.keys.Confirm, m.keys.Reject}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}

// Render draws one screen of the device
func Render(s flow.Screen) string {
	var body strings.Builder
	switch s.Step {
	case flow.StepApprove, flow.StepReject, flow.StepSettings:
		body.WriteString(buttonStyle.Render(s.Title))
	case flow.StepWarning:
		body.WriteString(warningStyle.Render(s.Title))
		body.WriteString("\n")
		body.WriteString(s.Text)
	default:
		body.WriteString(titleStyle.Render(s.Title))
		if s.Text != "" {
			body.WriteString("\n")
			body.WriteString(s.Text)
		}
	}

	var footer []string
	if !s.First {
		footer = append(footer, "<")
	}
	if s.Position >= 0 {
		footer = append(footer, fmt.Sprintf("%d/%d", s.Position+1, s.Total))
	}
	if s.Mode == review.ModeDynamic {
		footer = append(footer, "signers")
	}
	if !s.Last {
		footer = append(footer, ">")
	}
	if len(footer) > 0 {
		body.WriteString("\n")
		body.WriteString(dimStyle.Render(strings.Join(footer, " ")))
	}
	return screenStyle.Render(body.String())
}

// Run shows the flow on the terminal until the user decides
func Run(ctx context.Context, driver flow.Flow, opts ...tea.ProgramOption) (flow.Result, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(ctx, driver), opts...).Run()
	if err != nil {
		return flow.Result{}, fmt.Errorf("simulator failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return flow.Result{}, fmt.Errorf("unexpected simulator model %T", final)
	}
	if m.err != nil {
		return flow.Result{}, m.err
	}
	if !driver.Done() {
		return flow.Result{}, ErrClosed
	}
	return driver.Result(), nil
}
