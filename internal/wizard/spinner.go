package wizard

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// IsTTY reports whether stdout is an interactive terminal
func IsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
	result  any
}

type spinnerCompleteMsg struct {
	result any
	err    error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
		return m, nil

	case spinnerCompleteMsg:
		m.done = true
		m.err = msg.err
		m.result = msg.result
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.done {
		if m.err == nil {
			return successStyle.Render("✓ "+m.message) + "\n"
		}
		return errorStyle.Render("✗ "+m.message+" failed: "+m.err.Error()) + "\n"
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), messageStyle.Render(m.message))
}

// RunWithSpinner runs fn while a spinner is shown on stderr. Without a
// terminal it prints the message once instead.
func RunWithSpinner[T any](ctx context.Context, message string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if !IsTTY() {
		fmt.Fprintln(os.Stderr, messageStyle.Render(message+"..."))
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	go func() {
		result, err := fn(ctx)
		p.Send(spinnerCompleteMsg{result: result, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return zero, err
	}

	sm, ok := finalModel.(spinnerModel)
	if !ok {
		return zero, fmt.Errorf("unexpected model type")
	}
	if sm.err != nil {
		return zero, sm.err
	}
	result, _ := sm.result.(T)
	return result, nil
}
