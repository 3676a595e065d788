package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
)

// KeySection groups bindings under a heading in the help overlay
type KeySection struct {
	Title    string
	Bindings []key.Binding
}

// HelpOverlay lists every key binding in a centered box
type HelpOverlay struct {
	active   bool
	sections []KeySection
	scroll   int
	width    int
	height   int
	theme    *theme.Theme
}

func NewHelpOverlay(t *theme.Theme, sections []KeySection) HelpOverlay {
	return HelpOverlay{
		theme:    t,
		sections: sections,
	}
}

func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

func (h *HelpOverlay) IsActive() bool {
	return h.active
}

func (h *HelpOverlay) Toggle() {
	h.active = !h.active
	h.scroll = 0
}

func (h *HelpOverlay) Close() {
	h.active = false
	h.scroll = 0
}

func (h *HelpOverlay) Update(msg tea.Msg) tea.Cmd {
	if !h.active {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "?":
			h.Close()
		case "j", "down":
			// bounded in View
			h.scroll++
		case "k", "up":
			if h.scroll > 0 {
				h.scroll--
			}
		}
	}
	return nil
}

func (h *HelpOverlay) lines() []string {
	keyStyle := h.theme.Title
	descStyle := h.theme.Text

	var lines []string
	for _, section := range h.sections {
		lines = append(lines, h.theme.Subtitle.Render(section.Title), "")
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, "  "+keyStyle.Render(padRight(help.Key, 14))+descStyle.Render(help.Desc))
		}
		lines = append(lines, "")
	}
	return lines
}

func (h *HelpOverlay) View() string {
	if !h.active {
		return ""
	}

	overlayWidth := max(50, h.width*60/100)
	overlayHeight := max(16, h.height*70/100)

	lines := h.lines()

	maxVisible := max(5, overlayHeight-8)
	maxScroll := max(0, len(lines)-maxVisible)
	h.scroll = min(max(h.scroll, 0), maxScroll)
	visibleEnd := min(len(lines), h.scroll+maxVisible)

	var b strings.Builder

	title := h.theme.TitleActive.Render(" Keyboard Shortcuts ")
	b.WriteString(lipgloss.PlaceHorizontal(overlayWidth-4, lipgloss.Center, title))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines[h.scroll:visibleEnd], "\n"))
	b.WriteString("\n\n")
	if len(lines) > maxVisible {
		b.WriteString(h.theme.TextMuted.Render("[j/k to scroll] "))
	}
	b.WriteString(h.theme.TextMuted.Render("Press ? or esc to close"))

	overlayContent := lipgloss.NewStyle().
		Width(overlayWidth-4).
		Padding(1, 2).
		Render(b.String())

	overlayBox := h.theme.BorderActive.
		Width(overlayWidth).
		Render(overlayContent)

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, overlayBox)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
