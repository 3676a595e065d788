package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Cloudsky01/gh-restatus/internal/paths"
	"github.com/Cloudsky01/gh-restatus/internal/state"
)

var (
	clearHistory bool

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List recently opened pull requests",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
)

func init() {
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "Remove all entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	if clearHistory {
		if err := state.Clear(p.HistoryFile()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ History cleared"))
		return nil
	}

	h, err := state.LoadWithPaths(p)
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), h)
	return nil
}

func printHistory(w io.Writer, h *state.History) {
	if len(h.Entries) == 0 {
		fmt.Fprintln(w, infoStyle.Render("No pull requests opened yet"))
		return
	}
	for _, e := range h.Entries {
		fmt.Fprintf(w, "%s  %s\n", e.URL, infoStyle.Render(humanize.Time(e.VisitedAt)))
	}
}
