package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
)

// Spinner shows a labelled activity indicator while a request is outstanding
type Spinner struct {
	spinner spinner.Model
	active  bool
	label   string
	theme   *theme.Theme
}

func NewSpinner(t *theme.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().
		Foreground(t.Colors.Primary).
		Bold(true)

	return Spinner{
		spinner: s,
		theme:   t,
	}
}

// Start activates the spinner. The returned command is nil when it was
// already ticking, so a second Start only changes the label.
func (s *Spinner) Start(label string) tea.Cmd {
	s.label = label
	if s.active {
		return nil
	}
	s.active = true
	return s.spinner.Tick
}

func (s *Spinner) Stop() {
	s.active = false
	s.label = ""
}

func (s *Spinner) IsActive() bool {
	return s.active
}

func (s *Spinner) Label() string {
	return s.label
}

func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	return s.spinner.View() + " " + s.theme.TextDim.Render(s.label)
}
