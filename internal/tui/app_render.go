package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/internal/tui/components"
)

const barHeight = 2

func (a *App) renderLayout() string {
	var main string
	switch a.screen {
	case screenToken, screenURL:
		main = a.wrapPanel(a.prompt.View(), true)
	default:
		main = a.renderStatuses()
	}

	layout := lipgloss.JoinVertical(lipgloss.Left, main, a.statusBar.View(), a.helpBar.View())

	if a.toaster.HasToasts() {
		layout = lipgloss.JoinVertical(lipgloss.Left, a.toaster.View(), layout)
	}

	if a.spinner.IsActive() {
		layout = lipgloss.JoinVertical(lipgloss.Left, a.spinner.View(), layout)
	}

	return layout
}

func (a *App) renderStatuses() string {
	if a.loadErr != "" {
		msg := a.theme.StatusError.Width(a.width - 4).Render(a.loadErr)
		return a.wrapPanel(msg, true)
	}

	tableView := a.wrapPanel(a.table.View(), a.editor == nil)
	if a.editor == nil {
		return tableView
	}
	return lipgloss.JoinVertical(lipgloss.Left, tableView, a.wrapPanel(a.editor.View(), true))
}

func (a *App) tableHeight() int {
	return max(5, a.height-barHeight-4)
}

func (a *App) wrapPanel(content string, active bool) string {
	style := a.theme.BorderNormal
	if active {
		style = a.theme.BorderActive
	}
	return style.Render(content)
}

func (a *App) updateHelpBar() {
	switch {
	case a.screen != screenStatuses:
		a.helpBar.SetHints(components.PromptHints())
	case a.editor != nil:
		a.helpBar.SetHints(components.EditorHints())
	default:
		a.helpBar.SetHints(components.TableHints(a.table.Len() > 0))
	}
}
