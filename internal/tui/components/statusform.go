package components

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

// FailedRowMessage is shown above a row whose last submission failed
const FailedRowMessage = "Error, press enter to try again"

type EditorMode int

const (
	EditorCreate EditorMode = iota
	EditorEdit
)

// StatusDraft holds the values typed into the editor. It survives failed
// submissions so the user can retry without retyping.
type StatusDraft struct {
	Context     string
	Description string
	TargetURL   string
	State       models.State
}

// StatusEditor is the single open create or edit row
type StatusEditor struct {
	mode       EditorMode
	index      int
	draft      *StatusDraft
	form       *huh.Form
	failure    string
	submitting bool
	width      int
	theme      *theme.Theme
}

// NewCreateEditor opens an empty row for a new context
func NewCreateEditor(t *theme.Theme, width int) *StatusEditor {
	e := &StatusEditor{
		mode:  EditorCreate,
		index: -1,
		draft: &StatusDraft{State: models.StatePending},
		width: width,
		theme: t,
	}
	e.buildForm()
	return e
}

// NewEditEditor opens the row at index. Display-only states such as
// expected start on pending because they cannot be submitted.
func NewEditEditor(t *theme.Theme, index int, sc models.StatusContext, width int) *StatusEditor {
	state := sc.State
	if !state.Selectable() {
		state = models.StatePending
	}

	e := &StatusEditor{
		mode:  EditorEdit,
		index: index,
		draft: &StatusDraft{
			Context:     sc.Context,
			Description: sc.Description,
			TargetURL:   sc.TargetURL,
			State:       state,
		},
		width: width,
		theme: t,
	}
	e.buildForm()
	return e
}

func (e *StatusEditor) buildForm() {
	stateOptions := make([]huh.Option[models.State], len(models.SelectableStates))
	for i, s := range models.SelectableStates {
		icon, _ := e.theme.StateIcon(s)
		stateOptions[i] = huh.NewOption(icon+" "+string(s), s)
	}

	var fields []huh.Field
	title := "Edit " + e.draft.Context
	if e.mode == EditorCreate {
		title = "New status"
		fields = append(fields, huh.NewInput().
			Key("context").
			Title("Context").
			Placeholder("ci/build").
			Value(&e.draft.Context).
			Validate(validateContext))
	}

	fields = append(fields,
		huh.NewInput().
			Key("description").
			Title("Description").
			Value(&e.draft.Description),
		huh.NewInput().
			Key("target_url").
			Title("Target URL").
			Placeholder("https://").
			Value(&e.draft.TargetURL).
			Validate(validateTargetURL),
		huh.NewSelect[models.State]().
			Key("state").
			Title("State").
			Options(stateOptions...).
			Value(&e.draft.State),
	)

	group := huh.NewGroup(fields...).Title(title)
	if e.failure != "" {
		group = group.Description(FailedRowMessage + ": " + e.failure)
	}

	e.form = huh.NewForm(group).
		WithTheme(e.theme.Form()).
		WithShowHelp(false).
		WithWidth(max(40, e.width))
}

func validateContext(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("context is required")
	}
	return nil
}

func validateTargetURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL")
	}
	return nil
}

func (e *StatusEditor) Init() tea.Cmd {
	return e.form.Init()
}

// Update forwards msg to the form and reports whether the user finished it
func (e *StatusEditor) Update(msg tea.Msg) (bool, tea.Cmd) {
	if e.submitting {
		return false, nil
	}

	m, cmd := e.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		e.form = f
	}
	return e.form.State == huh.StateCompleted, cmd
}

// Aborted reports whether the form was abandoned from inside huh
func (e *StatusEditor) Aborted() bool {
	return e.form.State == huh.StateAborted
}

// MarkSubmitting freezes the form while the request is outstanding
func (e *StatusEditor) MarkSubmitting() {
	e.submitting = true
}

func (e *StatusEditor) Submitting() bool {
	return e.submitting
}

// MarkFailed reopens the form with the same values and an error banner
func (e *StatusEditor) MarkFailed(err error) tea.Cmd {
	e.submitting = false
	e.failure = err.Error()
	e.buildForm()
	return e.form.Init()
}

// Failed reports whether the last submission failed
func (e *StatusEditor) Failed() bool {
	return e.failure != ""
}

func (e *StatusEditor) Mode() EditorMode {
	return e.mode
}

// Index is the edited row, or -1 for a new row
func (e *StatusEditor) Index() int {
	return e.index
}

// Draft returns a copy of the current values
func (e *StatusEditor) Draft() StatusDraft {
	d := *e.draft
	d.Context = strings.TrimSpace(d.Context)
	return d
}

func (e *StatusEditor) SetWidth(width int) {
	e.width = width
	e.form = e.form.WithWidth(max(40, width))
}

func (e *StatusEditor) View() string {
	if e.submitting {
		return e.theme.TextDim.Render(fmt.Sprintf("Submitting %s...", e.Draft().Context))
	}
	return e.form.View()
}
