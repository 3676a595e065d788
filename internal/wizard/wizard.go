package wizard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cloudsky01/gh-restatus/internal/config"
	"github.com/Cloudsky01/gh-restatus/internal/github"
	"github.com/Cloudsky01/gh-restatus/internal/paths"
)

const (
	hostGitHub     = "github.com"
	hostEnterprise = "enterprise"
)

// Answers holds the raw values typed into the wizard
type Answers struct {
	Host        string
	Enterprise  string
	Timeout     string
	HistorySize string
	StoreToken  bool
	Token       string
}

// Wizard handles the interactive configuration creation
type Wizard struct {
	base    *config.Config
	answers Answers
}

// New creates a wizard whose fields start at the values in base
func New(base *config.Config) *Wizard {
	if base == nil {
		base = config.Default()
	}

	a := Answers{
		Host:        hostGitHub,
		Timeout:     "",
		HistorySize: strconv.Itoa(base.HistorySize),
	}
	if base.Timeout > 0 {
		a.Timeout = base.Timeout.String()
	}
	if base.APIURL != github.DefaultAPIURL {
		a.Host = hostEnterprise
		if u, err := url.Parse(base.APIURL); err == nil {
			a.Enterprise = u.Host
		}
	}

	return &Wizard{base: base, answers: a}
}

// Run asks for each setting and returns the resulting config. The second
// return value reports whether the token should be written to disk.
func (w *Wizard) Run() (*config.Config, bool, error) {
	fmt.Println()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	fmt.Println(titleStyle.Render("restatus configuration"))
	fmt.Println()

	if err := w.promptEndpoint(); err != nil {
		return nil, false, err
	}
	if err := w.promptSettings(); err != nil {
		return nil, false, err
	}
	if err := w.promptToken(); err != nil {
		return nil, false, err
	}

	cfg, err := w.Build()
	if err != nil {
		return nil, false, err
	}
	return cfg, w.answers.StoreToken, nil
}

func (w *Wizard) promptEndpoint() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where are your repositories hosted?").
				Options(
					huh.NewOption("github.com", hostGitHub),
					huh.NewOption("GitHub Enterprise Server", hostEnterprise),
				).
				Value(&w.answers.Host),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Enterprise host").
				Description("e.g. github.example.com").
				Validate(func(s string) error {
					_, _, err := EnterpriseURLs(s)
					return err
				}).
				Value(&w.answers.Enterprise),
		).WithHideFunc(func() bool {
			return w.answers.Host != hostEnterprise
		}),
	)

	return form.Run()
}

func (w *Wizard) promptSettings() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Request timeout (optional)").
				Description("A Go duration such as 30s. Leave empty for no timeout.").
				Placeholder("30s").
				Validate(func(s string) error {
					_, err := ParseTimeout(s)
					return err
				}).
				Value(&w.answers.Timeout),

			huh.NewInput().
				Title("History size").
				Description("How many recent pull requests to remember. 0 disables history.").
				Validate(func(s string) error {
					_, err := ParseHistorySize(s)
					return err
				}).
				Value(&w.answers.HistorySize),
		),
	)

	return form.Run()
}

func (w *Wizard) promptToken() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Store a token in the config file?").
				Description("Otherwise set RESTATUS_TOKEN or GITHUB_TOKEN, or enter it at startup.").
				Affirmative("Yes").
				Negative("No").
				Value(&w.answers.StoreToken),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub token").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("token is required")
					}
					return nil
				}).
				Value(&w.answers.Token),
		).WithHideFunc(func() bool {
			return !w.answers.StoreToken
		}),
	)

	return form.Run()
}

// Build converts the answers to a validated config
func (w *Wizard) Build() (*config.Config, error) {
	cfg := *w.base
	cfg.APIURL = github.DefaultAPIURL
	cfg.GraphQLURL = github.DefaultGraphQLURL

	if w.answers.Host == hostEnterprise {
		api, graphql, err := EnterpriseURLs(w.answers.Enterprise)
		if err != nil {
			return nil, err
		}
		cfg.APIURL = api
		cfg.GraphQLURL = graphql
	}

	timeout, err := ParseTimeout(w.answers.Timeout)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	size, err := ParseHistorySize(w.answers.HistorySize)
	if err != nil {
		return nil, err
	}
	cfg.HistorySize = size

	if w.answers.StoreToken {
		cfg.SetToken(w.answers.Token, paths.SourcePrompt)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnterpriseURLs returns the REST and GraphQL endpoints of a GitHub
// Enterprise Server host
func EnterpriseURLs(host string) (string, string, error) {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimSuffix(host, "/")
	if host == "" || strings.ContainsAny(host, "/ ") {
		return "", "", fmt.Errorf("invalid host %q", host)
	}
	return "https://" + host + "/api/v3/", "https://" + host + "/api/graphql", nil
}

// ParseTimeout accepts a Go duration. Empty means no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative")
	}
	return d, nil
}

func ParseHistorySize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("history size must be a non-negative number")
	}
	return n, nil
}
