package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cloudsky01/gh-restatus/internal/tui/components"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	New       key.Binding
	Edit      key.Binding
	Open      key.Binding
	Refetch   key.Binding
	URL       key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous context"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next context"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new status"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit selected status"),
		),
		Open: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "open target URL"),
		),
		Refetch: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refetch statuses"),
		),
		URL: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "open another pull request"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel editing"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit from anywhere"),
		),
	}
}

func (k keyMap) sections() []components.KeySection {
	return []components.KeySection{
		{Title: "Statuses", Bindings: []key.Binding{k.Up, k.Down, k.New, k.Edit, k.Open}},
		{Title: "Pull request", Bindings: []key.Binding{k.Refetch, k.URL}},
		{Title: "Editing", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			k.Cancel,
		}},
		{Title: "General", Bindings: []key.Binding{k.Help, k.Quit, k.ForceQuit}},
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.helpOverlay.IsActive() {
		a.helpOverlay.Update(msg)
		return a, nil
	}

	switch a.screen {
	case screenToken, screenURL:
		return a.handlePromptKey(msg)
	}

	if a.editor != nil {
		return a.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.helpOverlay.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.New):
		return a.openCreateEditor()

	case key.Matches(msg, a.keys.Edit):
		return a.openEditEditor()

	case key.Matches(msg, a.keys.Open):
		return a.openTargetURL()

	case key.Matches(msg, a.keys.Refetch):
		if a.loading {
			return a, nil
		}
		return a, a.loadPullRequest(a.ref)

	case key.Matches(msg, a.keys.URL):
		return a, a.showURLPrompt("")
	}

	return a, a.table.Update(msg)
}

func (a *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// esc on the URL prompt returns to the pull request that was open
	if a.screen == screenURL && key.Matches(msg, a.keys.Cancel) && a.ref.Number > 0 {
		a.prompt = nil
		a.screen = screenStatuses
		a.updateHelpBar()
		return a, nil
	}
	return a.updatePrompt(msg)
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editor.Submitting() {
		return a, nil
	}

	if key.Matches(msg, a.keys.Cancel) {
		a.closeEditor()
		return a, nil
	}
	return a.updateEditor(msg)
}
