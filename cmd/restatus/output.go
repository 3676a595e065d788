package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Cloudsky01/gh-restatus/internal/tui/theme"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// statusRows returns one row per context, in the order GitHub reported them
func statusRows(c models.Commit) [][]string {
	contexts := c.Contexts()
	rows := make([][]string, len(contexts))
	for i, sc := range contexts {
		rows[i] = []string{fmt.Sprintf("%d", i), string(sc.State), sc.Context, sc.Description, sc.TargetURL}
	}
	return rows
}

func printCommit(w io.Writer, ref models.PullRequestRef, c models.Commit) {
	t := theme.Default()

	fmt.Fprintln(w, labelStyle.Render(t.Icons.Repo+" ")+headerStyle.Render(ref.String())+
		infoStyle.Render("  "+t.Icons.Commit+" "+c.OID))

	if !c.HasStatus() {
		fmt.Fprintln(w, infoStyle.Render("No status checks on this commit"))
		return
	}
	if len(c.Contexts()) == 0 {
		fmt.Fprintln(w, infoStyle.Render("The status list is empty"))
		return
	}

	contexts := c.Contexts()
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border)).
		Headers("#", "STATE", "CONTEXT", "DESCRIPTION", "TARGET URL").
		Rows(statusRows(c)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(t.Colors.Primary)
			}
			if col == 1 && row >= 0 && row < len(contexts) {
				_, style := t.StateIcon(contexts[row].State)
				return base.Inherit(style)
			}
			return base
		})

	fmt.Fprintln(w, tbl.String())
}
