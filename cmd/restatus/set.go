package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cloudsky01/gh-restatus/internal/github"
	"github.com/Cloudsky01/gh-restatus/internal/logging"
	"github.com/Cloudsky01/gh-restatus/internal/reconcile"
	"github.com/Cloudsky01/gh-restatus/internal/wizard"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

var (
	setContext     string
	setState       string
	setDescription string
	setTargetURL   string
	setNew         bool

	setCmd = &cobra.Command{
		Use:   "set PR_URL",
		Short: "Create or update a status on the head commit of a pull request",
		Long: `Create a status on the head commit of a pull request.

When a context with the same name is already reported, its state,
description and target URL are replaced. Pass --new to always add
a fresh entry instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runSet,
	}
)

func init() {
	setCmd.Flags().StringVar(&setContext, "context", "", "Status context, e.g. ci/deploy")
	setCmd.Flags().StringVarP(&setState, "state", "s", "", "One of error, failure, pending, success")
	setCmd.Flags().StringVar(&setDescription, "description", "", "Short description")
	setCmd.Flags().StringVar(&setTargetURL, "target-url", "", "Link shown next to the status")
	setCmd.Flags().BoolVar(&setNew, "new", false, "Add a new entry even if the context exists")
	_ = setCmd.MarkFlagRequired("context")
	_ = setCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(setCmd)
}

// buildIntent edits the first context named like in, or creates a new one
func buildIntent(c models.Commit, in models.StatusInput, forceNew bool) reconcile.Intent {
	if !forceNew {
		if i := c.IndexOf(in.Context); i >= 0 {
			return reconcile.Edit{
				Index:       i,
				Description: in.Description,
				TargetURL:   in.TargetURL,
				State:       in.State,
			}
		}
	}
	return reconcile.Create{Input: in}
}

func runSet(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	logging.SetupConsole(env.config.Debug)

	ref, err := parseRef(args[0])
	if err != nil {
		return err
	}

	in := models.StatusInput{
		Context:     setContext,
		Description: setDescription,
		TargetURL:   setTargetURL,
		State:       models.ParseState(setState),
	}
	if err := in.Validate(); err != nil {
		return err
	}

	client, err := github.NewClient(env.config.Token, env.config.ClientOptions()...)
	if err != nil {
		return err
	}

	current, err := wizard.RunWithSpinner(cmd.Context(), "Loading "+ref.String(), func(ctx context.Context) (models.Commit, error) {
		return client.FetchStatusChecks(ctx, ref)
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", ref, err)
	}

	r := reconcile.New(client, ref)
	intent := buildIntent(current, in, setNew)
	next, err := wizard.RunWithSpinner(cmd.Context(), "Setting "+in.Context, func(ctx context.Context) (models.Commit, error) {
		return r.Submit(ctx, current, intent)
	})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", in.Context, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s is now %s", in.Context, in.State)))
	printCommit(cmd.OutOrStdout(), ref, next)
	return nil
}
