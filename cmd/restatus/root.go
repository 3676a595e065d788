package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Cloudsky01/gh-restatus/internal/config"
	"github.com/Cloudsky01/gh-restatus/internal/git"
	"github.com/Cloudsky01/gh-restatus/internal/logging"
	"github.com/Cloudsky01/gh-restatus/internal/paths"
	"github.com/Cloudsky01/gh-restatus/internal/state"
	"github.com/Cloudsky01/gh-restatus/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	token      string
	debug      bool
	noHistory  bool

	rootCmd = &cobra.Command{
		Use:   "restatus [PR_URL]",
		Short: "View and edit commit statuses of a GitHub pull request",
		Long: `restatus shows the commit statuses on the head commit of a pull request
and lets you create new ones or change the state of existing ones.

A token with the repo:status scope is read from RESTATUS_TOKEN, GITHUB_TOKEN,
a .env file, the config file or the --token flag. Without one you are
asked for it at startup.

Examples:
  restatus https://github.com/owner/repo/pull/123
  restatus list https://github.com/owner/repo/pull/123
  restatus set https://github.com/owner/repo/pull/123 --context ci/deploy --state success`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runView,
		Version: version,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: user config dir)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "GitHub token (overrides environment and config)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record opened pull requests")

	rootCmd.SetVersionTemplate(fmt.Sprintf("restatus {{.Version}} (%s, %s)\n", commit, date))
}

// environment is everything a command needs before talking to GitHub
type environment struct {
	paths  *paths.Paths
	config *config.Config
	viper  *viper.Viper
}

func loadEnvironment() (*environment, error) {
	p, err := paths.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize paths: %w", err)
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(paths.DotEnvFileName); err != nil {
		return nil, err
	}

	cfg, v, err := config.Load(p, configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)

	return &environment{paths: p, config: cfg, viper: v}, nil
}

// applyFlags layers command line flags over the loaded config
func applyFlags(cfg *config.Config) {
	if token != "" {
		cfg.SetToken(token, paths.SourceCLIFlag)
	}
	if debug {
		cfg.Debug = true
	}
}

func runView(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	closer, err := logging.SetupFile(env.paths.LogFile(), env.config.Debug)
	if err != nil {
		logging.Discard()
	} else {
		defer closer.Close()
	}

	history, err := state.LoadWithPaths(env.paths)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load history")
		history = &state.History{}
	}

	opts := tui.AppOptions{
		Config:      env.config,
		History:     history,
		HistoryPath: env.paths.HistoryFile(),
		NoHistory:   noHistory,
	}
	if len(args) == 1 {
		opts.InitialURL = args[0]
	}
	if repo, err := git.DetectFromWorkingDir(); err == nil {
		opts.RepoPrefix = repo.PullRequestURLPrefix()
	}

	log.Info().
		Str("version", version).
		Str("config", env.config.Path()).
		Str("token_source", env.config.TokenSource().String()).
		Msg("starting")

	app := tui.NewApp(opts)
	return tui.RunApp(app, func(p *tea.Program) {
		config.WatchConfig(env.viper, func(cfg *config.Config) {
			applyFlags(cfg)
			p.Send(tui.ConfigReloadedMsg{Config: cfg})
		})
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
