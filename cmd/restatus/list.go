package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cloudsky01/gh-restatus/internal/github"
	"github.com/Cloudsky01/gh-restatus/internal/logging"
	"github.com/Cloudsky01/gh-restatus/internal/wizard"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

var (
	listJSON bool

	listCmd = &cobra.Command{
		Use:   "list PR_URL",
		Short: "Print the statuses on the head commit of a pull request",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the commit as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	logging.SetupConsole(env.config.Debug)

	ref, err := parseRef(args[0])
	if err != nil {
		return err
	}

	client, err := github.NewClient(env.config.Token, env.config.ClientOptions()...)
	if err != nil {
		return err
	}

	c, err := wizard.RunWithSpinner(cmd.Context(), "Loading "+ref.String(), func(ctx context.Context) (models.Commit, error) {
		return client.FetchStatusChecks(ctx, ref)
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", ref, err)
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	printCommit(cmd.OutOrStdout(), ref, c)
	return nil
}

func parseRef(raw string) (models.PullRequestRef, error) {
	ref, err := github.ParsePullRequestURL(raw)
	if err != nil {
		return models.PullRequestRef{}, fmt.Errorf("%s", github.URLFormatHint)
	}
	return ref, nil
}
