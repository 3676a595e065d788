package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Cloudsky01/gh-restatus/internal/config"
	"github.com/Cloudsky01/gh-restatus/internal/paths"
	"github.com/Cloudsky01/gh-restatus/internal/wizard"
)

var (
	force bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage restatus configuration",
		Long: `Manage the restatus configuration file.

Configuration Precedence (lowest to highest):
  1. Defaults
  2. User config (~/.config/restatus/config.yaml)
  3. .env in the working directory
  4. Environment variables (RESTATUS_*, GITHUB_TOKEN)
  5. CLI flags`,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		RunE:  runConfigPath,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long:  `Show the configuration after merging all sources. The token is masked.`,
		RunE:  runConfigShow,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		RunE:  runConfigInit,
	}
)

func init() {
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, headerStyle.Render("Configuration File Locations"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "User Config:   %s %s\n", p.UserConfigFile(), existsIndicator(fileExists(p.UserConfigFile())))
	if configPath != "" {
		fmt.Fprintf(w, "--config:      %s %s\n", configPath, existsIndicator(fileExists(configPath)))
	}
	fmt.Fprintf(w, ".env:          %s %s\n", paths.DotEnvFileName, existsIndicator(fileExists(paths.DotEnvFileName)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "History:       %s %s\n", p.HistoryFile(), existsIndicator(fileExists(p.HistoryFile())))
	fmt.Fprintf(w, "Log:           %s %s\n", p.LogFile(), existsIndicator(fileExists(p.LogFile())))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	source := env.config.Path()
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintln(w, labelStyle.Render("# file: ")+infoStyle.Render(source))
	fmt.Fprintln(w, labelStyle.Render("# token source: ")+infoStyle.Render(env.config.TokenSource().String()))

	data, err := yaml.Marshal(env.config.Redacted())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}
	if err := p.EnsureDirs(); err != nil {
		return err
	}

	target := configPath
	if target == "" {
		target = p.UserConfigFile()
	}
	if fileExists(target) && !force {
		return fmt.Errorf("configuration file %s already exists. Use --force to overwrite", target)
	}
	if !wizard.IsTTY() {
		return fmt.Errorf("config init needs an interactive terminal")
	}

	cfg, storeToken, err := wizard.New(config.Default()).Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if err := cfg.Save(target, storeToken); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Configuration saved to: ")+infoStyle.Render(target))
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func existsIndicator(exists bool) string {
	if exists {
		return successStyle.Render("✓")
	}
	return infoStyle.Render("(not found)")
}
