package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
)

type PromptKind int

const (
	PromptToken PromptKind = iota
	PromptURL
)

// Prompt is a single-field form asking for the token or a pull request URL
type Prompt struct {
	kind        PromptKind
	value       *string
	suggestions []string
	errMsg      string
	form        *huh.Form
	width       int
	theme       *theme.Theme
}

// NewTokenPrompt asks for a personal access token. Input is masked.
func NewTokenPrompt(t *theme.Theme, width int) *Prompt {
	p := &Prompt{kind: PromptToken, value: new(string), width: width, theme: t}
	p.buildForm()
	return p
}

// NewURLPrompt asks for a pull request URL, offering suggestions as the user types
func NewURLPrompt(t *theme.Theme, initial string, suggestions []string, width int) *Prompt {
	value := initial
	p := &Prompt{
		kind:        PromptURL,
		value:       &value,
		suggestions: suggestions,
		width:       width,
		theme:       t,
	}
	p.buildForm()
	return p
}

func (p *Prompt) buildForm() {
	input := huh.NewInput().Value(p.value)

	var group *huh.Group
	switch p.kind {
	case PromptToken:
		input = input.
			Title("GitHub token").
			Placeholder("ghp_...").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("token is required")
				}
				return nil
			})
		group = huh.NewGroup(input).
			Title("Authenticate").
			Description("The token needs the repo:status scope. It is kept in memory only.")
	default:
		input = input.
			Title("Pull request URL").
			Placeholder("https://github.com/owner/repo/pull/123")
		if len(p.suggestions) > 0 {
			input = input.Suggestions(p.suggestions)
		}
		group = huh.NewGroup(input).Title("Open pull request")
	}

	if p.errMsg != "" {
		group = group.Description(p.theme.StatusError.Render(p.errMsg))
	}

	p.form = huh.NewForm(group).
		WithTheme(p.theme.Form()).
		WithShowHelp(false).
		WithWidth(max(40, p.width))
}

func (p *Prompt) Kind() PromptKind {
	return p.kind
}

func (p *Prompt) Init() tea.Cmd {
	return p.form.Init()
}

// Update forwards msg to the form and reports whether a value was submitted
func (p *Prompt) Update(msg tea.Msg) (bool, tea.Cmd) {
	m, cmd := p.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		p.form = f
	}
	return p.form.State == huh.StateCompleted, cmd
}

// Value returns the submitted text without surrounding whitespace
func (p *Prompt) Value() string {
	return strings.TrimSpace(*p.value)
}

// Error returns the message shown under the prompt, if any
func (p *Prompt) Error() string {
	return p.errMsg
}

// Reject reopens the prompt with the same value and an error message
func (p *Prompt) Reject(msg string) tea.Cmd {
	p.errMsg = msg
	p.buildForm()
	return p.form.Init()
}

func (p *Prompt) SetWidth(width int) {
	p.width = width
	p.form = p.form.WithWidth(max(40, width))
}

func (p *Prompt) View() string {
	return p.form.View()
}
