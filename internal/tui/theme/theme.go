// Package theme provides centralized styling for the TUI application.
package theme

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

// Colors defines the color palette for the application
type Colors struct {
	Primary   lipgloss.Color // selection, active borders
	Secondary lipgloss.Color
	Accent    lipgloss.Color // links and the editing row

	Text      lipgloss.Color
	TextDim   lipgloss.Color
	TextMuted lipgloss.Color // hints, disabled

	Success lipgloss.Color
	Warning lipgloss.Color // pending
	Error   lipgloss.Color // error and failure
	Neutral lipgloss.Color // expected

	BgSecondary lipgloss.Color // bars, headers
	BgHighlight lipgloss.Color

	Border       lipgloss.Color
	BorderActive lipgloss.Color
}

// Theme contains all styling for the application
type Theme struct {
	Colors Colors

	Title        lipgloss.Style
	TitleActive  lipgloss.Style
	Subtitle     lipgloss.Style
	Text         lipgloss.Style
	TextDim      lipgloss.Style
	TextMuted    lipgloss.Style
	Link         lipgloss.Style
	StatusBar    lipgloss.Style
	HelpBar      lipgloss.Style
	Breadcrumb   lipgloss.Style
	BorderNormal lipgloss.Style
	BorderActive lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	StatusError   lipgloss.Style
	StatusNeutral lipgloss.Style

	Icons IconSet
}

// IconSet defines the icons used throughout the app
type IconSet struct {
	Success  string
	Failure  string
	Error    string
	Pending  string
	Expected string
	Info     string
	Commit   string
	Repo     string
	Edit     string
	New      string
}

// DefaultColors returns the default color palette (dark theme)
func DefaultColors() Colors {
	return Colors{
		Primary:   lipgloss.Color("39"),
		Secondary: lipgloss.Color("33"),
		Accent:    lipgloss.Color("141"),

		Text:      lipgloss.Color("252"),
		TextDim:   lipgloss.Color("245"),
		TextMuted: lipgloss.Color("240"),

		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("214"),
		Error:   lipgloss.Color("196"),
		Neutral: lipgloss.Color("247"),

		BgSecondary: lipgloss.Color("236"),
		BgHighlight: lipgloss.Color("238"),

		Border:       lipgloss.Color("240"),
		BorderActive: lipgloss.Color("39"),
	}
}

// DefaultIcons returns the default icon set
func DefaultIcons() IconSet {
	return IconSet{
		Success:  "✓",
		Failure:  "✗",
		Error:    "!",
		Pending:  "●",
		Expected: "○",
		Info:     "ℹ",
		Commit:   "⎇",
		Repo:     "📦",
		Edit:     "✎",
		New:      "+",
	}
}

// Default returns the default theme
func Default() *Theme {
	colors := DefaultColors()

	return &Theme{
		Colors: colors,
		Icons:  DefaultIcons(),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Primary),

		TitleActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Text).
			Background(colors.Primary).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(colors.TextDim),

		Text: lipgloss.NewStyle().
			Foreground(colors.Text),

		TextDim: lipgloss.NewStyle().
			Foreground(colors.TextDim),

		TextMuted: lipgloss.NewStyle().
			Foreground(colors.TextMuted),

		Link: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Underline(true),

		StatusBar: lipgloss.NewStyle().
			Background(colors.BgSecondary).
			Foreground(colors.TextDim).
			Padding(0, 1),

		HelpBar: lipgloss.NewStyle().
			Background(colors.BgSecondary).
			Foreground(colors.TextMuted).
			Padding(0, 1),

		Breadcrumb: lipgloss.NewStyle().
			Background(colors.BgSecondary).
			Foreground(colors.Accent).
			Padding(0, 1),

		BorderNormal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border),

		BorderActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.BorderActive),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(colors.Success),

		StatusPending: lipgloss.NewStyle().
			Foreground(colors.Warning),

		StatusError: lipgloss.NewStyle().
			Foreground(colors.Error),

		StatusNeutral: lipgloss.NewStyle().
			Foreground(colors.Neutral).
			Italic(true),
	}
}

// StateIcon returns the icon and style for a status state
func (t *Theme) StateIcon(state models.State) (string, lipgloss.Style) {
	switch state {
	case models.StateSuccess:
		return t.Icons.Success, t.StatusSuccess
	case models.StateFailure:
		return t.Icons.Failure, t.StatusError
	case models.StateError:
		return t.Icons.Error, t.StatusError
	case models.StatePending:
		return t.Icons.Pending, t.StatusPending
	default:
		return t.Icons.Expected, t.StatusNeutral
	}
}

// RenderState renders "<icon> <state>" in the state's color
func (t *Theme) RenderState(state models.State) string {
	icon, style := t.StateIcon(state)
	return style.Render(icon + " " + string(state))
}

// Divider returns a horizontal divider line
func (t *Theme) Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return t.TextMuted.Render(strings.Repeat("─", width))
}

// Form returns the huh theme matching the palette
func (t *Theme) Form() *huh.Theme {
	ht := huh.ThemeBase()
	ht.Focused.Title = ht.Focused.Title.Foreground(t.Colors.Primary).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(t.Colors.TextDim)
	ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(t.Colors.Accent)
	ht.Focused.SelectedOption = ht.Focused.SelectedOption.Foreground(t.Colors.Primary)
	ht.Focused.ErrorMessage = ht.Focused.ErrorMessage.Foreground(t.Colors.Error)
	ht.Focused.ErrorIndicator = ht.Focused.ErrorIndicator.Foreground(t.Colors.Error)
	ht.Focused.Base = ht.Focused.Base.BorderForeground(t.Colors.BorderActive)
	ht.Blurred.Title = ht.Blurred.Title.Foreground(t.Colors.TextDim)
	return ht
}
