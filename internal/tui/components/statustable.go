package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

const (
	colIndex       = "index"
	colState       = "state"
	colContext     = "context"
	colDescription = "description"
	colTarget      = "target"
)

// StatusTable displays the status contexts of a commit
type StatusTable struct {
	table     table.Model
	contexts  []models.StatusContext
	hasStatus bool
	loaded    bool
	editing   int
	width     int
	height    int
	focused   bool
	theme     *theme.Theme
	pageSize  int
}

// NewStatusTable creates a new status table component
func NewStatusTable(t *theme.Theme) StatusTable {
	return StatusTable{
		theme:    t,
		editing:  -1,
		pageSize: 15,
	}
}

// SetCommit replaces the rows with the contexts of c, keeping the cursor
// position when possible
func (s *StatusTable) SetCommit(c models.Commit) {
	cursor := s.SelectedIndex()
	s.contexts = c.Contexts()
	s.hasStatus = c.HasStatus()
	s.loaded = true
	s.rebuildTable(cursor)
}

// Clear removes all rows, as when a new pull request is being loaded
func (s *StatusTable) Clear() {
	s.contexts = nil
	s.hasStatus = false
	s.loaded = false
	s.editing = -1
	s.rebuildTable(0)
}

// SetEditing marks the row being edited. -1 clears the marker.
func (s *StatusTable) SetEditing(index int) {
	s.editing = index
	s.rebuildTable(s.SelectedIndex())
}

// SetSize sets dimensions
func (s *StatusTable) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.pageSize = max(3, height-8)
	s.rebuildTable(s.SelectedIndex())
}

// SetFocused sets focus state
func (s *StatusTable) SetFocused(focused bool) {
	s.focused = focused
	s.table = s.table.Focused(focused)
}

// Len returns the number of rows
func (s *StatusTable) Len() int {
	return len(s.contexts)
}

// SelectedIndex returns the position of the highlighted context, or -1
func (s *StatusTable) SelectedIndex() int {
	if len(s.contexts) == 0 {
		return -1
	}
	row := s.table.HighlightedRow()
	if row.Data == nil {
		return -1
	}
	if idx, ok := row.Data[colIndex].(int); ok && idx < len(s.contexts) {
		return idx
	}
	return -1
}

// Selected returns the highlighted context
func (s *StatusTable) Selected() (models.StatusContext, bool) {
	idx := s.SelectedIndex()
	if idx < 0 {
		return models.StatusContext{}, false
	}
	return s.contexts[idx], true
}

func (s *StatusTable) rebuildTable(cursor int) {
	stateWidth := 12
	contextWidth := 28
	descWidth := 36
	targetWidth := max(20, s.width-stateWidth-contextWidth-descWidth-10)

	columns := []table.Column{
		table.NewColumn(colState, "State", stateWidth),
		table.NewColumn(colContext, "Context", contextWidth),
		table.NewColumn(colDescription, "Description", descWidth),
		table.NewColumn(colTarget, "Target URL", targetWidth),
	}

	rows := make([]table.Row, len(s.contexts))
	for i, sc := range s.contexts {
		icon, style := s.theme.StateIcon(sc.State)
		name := truncate(sc.Context, contextWidth-2)
		if i == s.editing {
			name = s.theme.Icons.Edit + " " + truncate(sc.Context, contextWidth-4)
		}

		rows[i] = table.NewRow(table.RowData{
			colIndex:       i,
			colState:       table.NewStyledCell(icon+" "+string(sc.State), style),
			colContext:     name,
			colDescription: truncate(sc.Description, descWidth-2),
			colTarget:      truncate(sc.TargetURL, targetWidth-2),
		})
	}

	highlightStyle := lipgloss.NewStyle().
		Background(s.theme.Colors.BgHighlight).
		Foreground(s.theme.Colors.Primary).
		Bold(true)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(s.theme.Colors.Primary)

	s.table = table.New(columns).
		WithRows(rows).
		WithPageSize(s.pageSize).
		Focused(s.focused).
		BorderRounded().
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(s.theme.Colors.Text).
			BorderForeground(s.theme.Colors.Border)).
		HighlightStyle(highlightStyle).
		HeaderStyle(headerStyle)

	if cursor > 0 && len(rows) > 0 {
		s.table = s.table.WithHighlightedRow(min(cursor, len(rows)-1))
	}
}

// Update handles input
func (s *StatusTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

// View renders the table
func (s *StatusTable) View() string {
	var b strings.Builder

	titleStyle := s.theme.Title
	if s.focused {
		titleStyle = s.theme.TitleActive
	}
	b.WriteString(titleStyle.Render("Status checks"))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(s.theme.TextMuted.Render("Nothing loaded"))
	case !s.hasStatus:
		b.WriteString(s.theme.TextMuted.Render("No status checks on this commit"))
	case len(s.contexts) == 0:
		b.WriteString(s.theme.TextMuted.Render("The status list is empty"))
	default:
		b.WriteString(s.table.View())
		b.WriteString("\n")
		b.WriteString(s.theme.TextMuted.Render(fmt.Sprintf("%d contexts", len(s.contexts))))
	}

	return lipgloss.NewStyle().
		Width(s.width).
		Render(b.String())
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}
