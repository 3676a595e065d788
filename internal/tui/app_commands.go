package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cloudsky01/gh-restatus/internal/reconcile"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

var now = time.Now

func (a *App) fetchStatusesCmd(gen int, ref models.PullRequestRef) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		commit, err := client.FetchStatusChecks(context.Background(), ref)
		return statusesLoadedMsg{gen: gen, ref: ref, commit: commit, err: err}
	}
}

// submitCmd captures the commit as it is now. No other request can run for
// this pull request while the editor is submitting.
func (a *App) submitCmd(gen int, intent reconcile.Intent) tea.Cmd {
	r := reconcile.New(a.client, a.ref)
	current := a.commit
	return func() tea.Msg {
		commit, err := r.Submit(context.Background(), current, intent)
		return statusSubmittedMsg{gen: gen, commit: commit, err: err}
	}
}

func (a *App) openTargetURL() (tea.Model, tea.Cmd) {
	sc, ok := a.table.Selected()
	if !ok {
		return a, nil
	}
	if sc.TargetURL == "" {
		return a, a.toaster.Info(sc.Context + " has no target URL")
	}
	if err := a.openURL(sc.TargetURL); err != nil {
		return a, a.toaster.Error("Failed to open browser")
	}
	return a, a.toaster.Info("Opening in browser...")
}

func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
