package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
)

// StatusBar displays the pull request being viewed and request activity
type StatusBar struct {
	width       int
	pullRequest string
	commit      string
	count       int
	loading     bool
	message     string
	theme       *theme.Theme
}

// NewStatusBar creates a new status bar
func NewStatusBar(t *theme.Theme) StatusBar {
	return StatusBar{
		theme: t,
	}
}

// SetSize sets the width
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetPullRequest sets the pull request label, e.g. acme/widgets#42
func (s *StatusBar) SetPullRequest(pr string) {
	s.pullRequest = pr
}

// SetCommit sets the head commit and the number of contexts on it
func (s *StatusBar) SetCommit(oid string, count int) {
	if len(oid) > 7 {
		oid = oid[:7]
	}
	s.commit = oid
	s.count = count
}

// SetLoading sets the loading state
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetMessage sets a short right-aligned note, such as the token source
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// View renders the status bar
func (s *StatusBar) View() string {
	parts := []string{}
	if s.pullRequest != "" {
		parts = append(parts, s.theme.Icons.Repo+" "+s.pullRequest)
	}
	if s.commit != "" {
		parts = append(parts, fmt.Sprintf("%s %s", s.theme.Icons.Commit, s.commit))
	}

	breadcrumb := strings.Join(parts, " > ")

	var statusParts []string
	if s.loading {
		statusParts = append(statusParts,
			s.theme.StatusPending.Render(s.theme.Icons.Pending+" Loading"))
	} else if s.commit != "" {
		statusParts = append(statusParts, fmt.Sprintf("%d contexts", s.count))
	}
	if s.message != "" {
		statusParts = append(statusParts, s.message)
	}

	status := strings.Join(statusParts, " | ")

	leftWidth := lipgloss.Width(breadcrumb)
	rightWidth := lipgloss.Width(status)
	spacerWidth := s.width - leftWidth - rightWidth - 4

	var content string
	if spacerWidth > 0 {
		content = s.theme.Breadcrumb.Render(breadcrumb) +
			strings.Repeat(" ", spacerWidth) +
			status
	} else {
		content = s.theme.Breadcrumb.Render(breadcrumb) + " " + status
	}

	return s.theme.StatusBar.
		Width(s.width).
		Render(content)
}

// HelpBar displays context-sensitive keybindings
type HelpBar struct {
	width int
	hints []string
	theme *theme.Theme
}

// NewHelpBar creates a new help bar
func NewHelpBar(t *theme.Theme) HelpBar {
	return HelpBar{
		theme: t,
	}
}

// SetSize sets the width
func (h *HelpBar) SetSize(width int) {
	h.width = width
}

// SetHints sets the keybinding hints
func (h *HelpBar) SetHints(hints []string) {
	h.hints = hints
}

// View renders the help bar
func (h *HelpBar) View() string {
	return h.theme.HelpBar.
		Width(h.width).
		Render(strings.Join(h.hints, " "))
}

// TableHints returns the hints shown while browsing contexts
func TableHints(hasRows bool) []string {
	hints := []string{"[n]ew"}
	if hasRows {
		hints = append(hints, "[e/enter] edit", "[w] open target")
	}
	return append(hints, "[r]efetch", "[u]rl", "[?] help", "[q]uit")
}

// EditorHints returns the hints shown while a row is being edited
func EditorHints() []string {
	return []string{"[tab] next field", "[enter] done", "[esc] cancel"}
}

// PromptHints returns the hints shown on the token and URL prompts
func PromptHints() []string {
	return []string{"[enter] submit", "[ctrl+c] quit"}
}
