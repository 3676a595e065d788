package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/Cloudsky01/gh-restatus/internal/config"
	"github.com/Cloudsky01/gh-restatus/internal/github"
	"github.com/Cloudsky01/gh-restatus/internal/paths"
	"github.com/Cloudsky01/gh-restatus/internal/reconcile"
	"github.com/Cloudsky01/gh-restatus/internal/state"
	"github.com/Cloudsky01/gh-restatus/internal/tui/components"
	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

type screen int

const (
	screenToken screen = iota
	screenURL
	screenStatuses
)

// StatusClient is the part of the GitHub client the UI talks to
type StatusClient interface {
	FetchStatusChecks(ctx context.Context, ref models.PullRequestRef) (models.Commit, error)
	reconcile.StatusCreator
}

// ClientFactory builds a client for the token and endpoints in cfg
type ClientFactory func(cfg *config.Config) (StatusClient, error)

// DefaultClientFactory builds a real GitHub client
func DefaultClientFactory(cfg *config.Config) (StatusClient, error) {
	return github.NewClient(cfg.Token, cfg.ClientOptions()...)
}

type statusesLoadedMsg struct {
	gen    int
	ref    models.PullRequestRef
	commit models.Commit
	err    error
}

type statusSubmittedMsg struct {
	gen    int
	commit models.Commit
	err    error
}

// ConfigReloadedMsg is sent when the config file changes on disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

type App struct {
	config      *config.Config
	newClient   ClientFactory
	client      StatusClient
	history     *state.History
	historyPath string
	noHistory   bool
	repoPrefix  string
	openURL     func(string) error

	theme *theme.Theme
	keys  keyMap

	prompt      *components.Prompt
	editor      *components.StatusEditor
	table       components.StatusTable
	helpOverlay components.HelpOverlay
	toaster     components.Toaster
	spinner     components.Spinner
	statusBar   components.StatusBar
	helpBar     components.HelpBar

	screen  screen
	ref     models.PullRequestRef
	commit  models.Commit
	loaded  bool
	loading bool
	loadErr string
	// gen is bumped whenever the pull request is (re)loaded; responses
	// carrying an older value are dropped
	gen int

	pendingURL string
	initCmd    tea.Cmd

	width  int
	height int
}

type AppOptions struct {
	Config      *config.Config
	History     *state.History
	HistoryPath string
	NoHistory   bool
	// InitialURL is loaded right away when it parses
	InitialURL string
	// RepoPrefix pre-fills the URL prompt, e.g. https://github.com/acme/widgets/pull/
	RepoPrefix string
	NewClient  ClientFactory
	OpenURL    func(string) error
}

func NewApp(opts AppOptions) *App {
	t := theme.Default()
	keys := defaultKeyMap()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	history := opts.History
	if history == nil {
		history = &state.History{}
	}
	newClient := opts.NewClient
	if newClient == nil {
		newClient = DefaultClientFactory
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openInBrowser
	}

	app := &App{
		config:      cfg,
		newClient:   newClient,
		history:     history,
		historyPath: opts.HistoryPath,
		noHistory:   opts.NoHistory,
		repoPrefix:  opts.RepoPrefix,
		openURL:     openURL,
		theme:       t,
		keys:        keys,
		table:       components.NewStatusTable(t),
		helpOverlay: components.NewHelpOverlay(t, keys.sections()),
		toaster:     components.NewToaster(t),
		spinner:     components.NewSpinner(t),
		statusBar:   components.NewStatusBar(t),
		helpBar:     components.NewHelpBar(t),
		pendingURL:  opts.InitialURL,
	}

	if !cfg.HasToken() {
		app.initCmd = app.showTokenPrompt()
	} else if err := app.rebuildClient(); err != nil {
		app.showTokenPrompt()
		app.initCmd = app.prompt.Reject(err.Error())
	} else {
		app.initCmd = app.openPendingURL()
	}

	app.updateHelpBar()
	return app
}

func (a *App) Init() tea.Cmd {
	return a.initCmd
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case statusesLoadedMsg:
		return a.handleStatusesLoaded(msg)

	case statusSubmittedMsg:
		return a.handleStatusSubmitted(msg)

	case ConfigReloadedMsg:
		return a.handleConfigReloaded(msg)

	case components.ToastExpiredMsg:
		a.toaster.Update(msg)
		return a, nil

	case spinner.TickMsg:
		return a, a.spinner.Update(msg)
	}

	// huh forms advance through their own messages
	switch {
	case a.prompt != nil:
		return a.updatePrompt(msg)
	case a.editor != nil:
		return a.updateEditor(msg)
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}

	if a.helpOverlay.IsActive() {
		return a.helpOverlay.View()
	}

	return a.renderLayout()
}

func (a *App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height

	a.statusBar.SetSize(msg.Width)
	a.helpBar.SetSize(msg.Width)
	a.toaster.SetWidth(msg.Width)
	a.helpOverlay.SetSize(msg.Width, msg.Height)
	a.table.SetSize(msg.Width-2, a.tableHeight())

	// forms size their groups from the window
	var cmd tea.Cmd
	if a.prompt != nil {
		a.prompt.SetWidth(msg.Width - 4)
		_, cmd = a.prompt.Update(msg)
	}
	if a.editor != nil {
		a.editor.SetWidth(msg.Width - 4)
		_, cmd = a.editor.Update(msg)
	}
	return a, cmd
}

func (a *App) showTokenPrompt() tea.Cmd {
	a.screen = screenToken
	a.prompt = components.NewTokenPrompt(a.theme, a.width-4)
	a.updateHelpBar()
	return a.prompt.Init()
}

func (a *App) showURLPrompt(initial string) tea.Cmd {
	if initial == "" {
		initial = a.repoPrefix
	}
	a.screen = screenURL
	a.prompt = components.NewURLPrompt(a.theme, initial, a.urlSuggestions(), a.width-4)
	a.updateHelpBar()
	return a.prompt.Init()
}

// openPendingURL loads the URL given on the command line, or asks for one
func (a *App) openPendingURL() tea.Cmd {
	raw := a.pendingURL
	a.pendingURL = ""
	if raw == "" {
		return a.showURLPrompt("")
	}

	ref, err := github.ParsePullRequestURL(raw)
	if err != nil {
		a.showURLPrompt(raw)
		return a.prompt.Reject(github.URLFormatHint)
	}
	return a.loadPullRequest(ref)
}

func (a *App) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := a.prompt.Update(msg)
	if !done {
		return a, cmd
	}

	switch a.prompt.Kind() {
	case components.PromptToken:
		a.config.SetToken(a.prompt.Value(), paths.SourcePrompt)
		if err := a.rebuildClient(); err != nil {
			return a, a.prompt.Reject(err.Error())
		}
		return a, a.openPendingURL()

	default:
		ref, err := github.ParsePullRequestURL(a.prompt.Value())
		if err != nil {
			return a, a.prompt.Reject(github.URLFormatHint)
		}
		return a, a.loadPullRequest(ref)
	}
}

// loadPullRequest shows ref and starts fetching its head commit statuses
func (a *App) loadPullRequest(ref models.PullRequestRef) tea.Cmd {
	a.gen++
	a.ref = ref
	a.commit = models.Commit{}
	a.loaded = false
	a.loading = true
	a.loadErr = ""
	a.prompt = nil
	a.editor = nil
	a.screen = screenStatuses

	a.table.Clear()
	a.statusBar.SetPullRequest(ref.String())
	a.statusBar.SetCommit("", 0)
	a.statusBar.SetLoading(true)
	a.updateHelpBar()

	return tea.Batch(
		a.spinner.Start("Loading "+ref.String()+"..."),
		a.fetchStatusesCmd(a.gen, ref),
	)
}

func (a *App) handleStatusesLoaded(msg statusesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.gen {
		log.Debug().Str("pr", msg.ref.String()).Msg("dropping stale status response")
		return a, nil
	}

	a.loading = false
	a.spinner.Stop()
	a.statusBar.SetLoading(false)

	if msg.err != nil {
		a.loadErr = fetchErrorMessage(msg.err)
		a.table.Clear()
		a.updateHelpBar()
		return a, a.toaster.Error("Failed to load " + msg.ref.String())
	}

	a.commit = msg.commit
	a.loaded = true
	a.table.SetCommit(msg.commit)
	a.table.SetFocused(true)
	a.statusBar.SetCommit(msg.commit.OID, len(msg.commit.Contexts()))
	a.updateHelpBar()
	a.recordHistory(msg.ref)
	return a, nil
}

// fetchErrorMessage is shown in place of the table when loading fails
func fetchErrorMessage(err error) string {
	return fmt.Sprintf("An error occurred when loading this PR: %s Does your token have sufficient scope?", err)
}

func (a *App) openCreateEditor() (tea.Model, tea.Cmd) {
	if !a.loaded || a.loading {
		return a, nil
	}
	a.editor = components.NewCreateEditor(a.theme, a.width-4)
	a.table.SetFocused(false)
	a.updateHelpBar()
	return a, a.editor.Init()
}

func (a *App) openEditEditor() (tea.Model, tea.Cmd) {
	if !a.loaded || a.loading {
		return a, nil
	}
	index := a.table.SelectedIndex()
	sc, ok := a.table.Selected()
	if !ok {
		return a, nil
	}
	a.editor = components.NewEditEditor(a.theme, index, sc, a.width-4)
	a.table.SetEditing(index)
	a.table.SetFocused(false)
	a.updateHelpBar()
	return a, a.editor.Init()
}

func (a *App) closeEditor() {
	a.editor = nil
	a.table.SetEditing(-1)
	a.table.SetFocused(true)
	a.updateHelpBar()
}

func (a *App) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := a.editor.Update(msg)
	if a.editor.Aborted() {
		a.closeEditor()
		return a, cmd
	}
	if !done {
		return a, cmd
	}

	a.editor.MarkSubmitting()
	draft := a.editor.Draft()
	return a, tea.Batch(
		cmd,
		a.spinner.Start("Submitting "+draft.Context+"..."),
		a.submitCmd(a.gen, editorIntent(a.editor)),
	)
}

func editorIntent(e *components.StatusEditor) reconcile.Intent {
	d := e.Draft()
	if e.Mode() == components.EditorEdit {
		return reconcile.Edit{
			Index:       e.Index(),
			Description: d.Description,
			TargetURL:   d.TargetURL,
			State:       d.State,
		}
	}
	return reconcile.Create{Input: models.StatusInput{
		Context:     d.Context,
		Description: d.Description,
		TargetURL:   d.TargetURL,
		State:       d.State,
	}}
}

func (a *App) handleStatusSubmitted(msg statusSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.gen || a.editor == nil {
		return a, nil
	}
	a.spinner.Stop()

	if msg.err != nil {
		return a, tea.Batch(
			a.editor.MarkFailed(msg.err),
			a.toaster.Error("Failed to create status"),
		)
	}

	name := a.editor.Draft().Context
	a.commit = msg.commit
	a.table.SetCommit(msg.commit)
	a.statusBar.SetCommit(msg.commit.OID, len(msg.commit.Contexts()))
	a.closeEditor()
	return a, a.toaster.Success("Set " + name)
}

func (a *App) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	next := msg.Config
	if next == nil {
		return a, nil
	}
	if !next.HasToken() && a.config.HasToken() {
		next.SetToken(a.config.Token, a.config.TokenSource())
	}

	same := a.config.SameEndpoint(next)
	a.config = next
	if same || !next.HasToken() {
		return a, a.toaster.Info("Configuration reloaded")
	}

	if err := a.rebuildClient(); err != nil {
		log.Error().Err(err).Msg("failed to rebuild client after config change")
		return a, a.toaster.Error("Config reload failed: " + err.Error())
	}
	return a, a.toaster.Info("Configuration reloaded, client rebuilt")
}

func (a *App) rebuildClient() error {
	client, err := a.newClient(a.config)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

func (a *App) recordHistory(ref models.PullRequestRef) {
	if a.noHistory || a.config.HistorySize == 0 {
		return
	}
	a.history.Record(ref, now(), a.config.HistorySize)
	if a.historyPath == "" {
		return
	}
	if err := a.history.Save(a.historyPath); err != nil {
		log.Warn().Err(err).Str("path", a.historyPath).Msg("failed to save history")
	}
}

func (a *App) urlSuggestions() []string {
	var out []string
	if a.repoPrefix != "" {
		out = append(out, a.repoPrefix)
	}
	return append(out, a.history.URLs()...)
}

// RunApp runs the UI until the user quits. watch, when set, is handed the
// program so it can deliver ConfigReloadedMsg.
func RunApp(app *App, watch func(p *tea.Program)) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	if watch != nil {
		watch(p)
	}
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
