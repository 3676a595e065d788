package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Cloudsky01/gh-restatus/internal/github"
	"github.com/Cloudsky01/gh-restatus/internal/paths"
)

const (
	EnvPrefix          = "RESTATUS"
	DefaultHistorySize = 10
)

// tokenEnvVars are checked in order for the token
var tokenEnvVars = []string{EnvPrefix + "_TOKEN", "GITHUB_TOKEN"}

type Config struct {
	Token       string        `mapstructure:"token" yaml:"token,omitempty"`
	APIURL      string        `mapstructure:"api_url" yaml:"api_url"`
	GraphQLURL  string        `mapstructure:"graphql_url" yaml:"graphql_url"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Debug       bool          `mapstructure:"debug" yaml:"debug"`
	HistorySize int           `mapstructure:"history_size" yaml:"history_size"`

	path        string
	tokenSource paths.ConfigSource
}

// Default returns a config with every key at its default value
func Default() *Config {
	return &Config{
		APIURL:      github.DefaultAPIURL,
		GraphQLURL:  github.DefaultGraphQLURL,
		HistorySize: DefaultHistorySize,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("token", "")
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("graphql_url", d.GraphQLURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("history_size", d.HistorySize)
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the config file at path, or the user config file when path is
// empty, and overlays RESTATUS_* environment variables. Only an explicit path
// is required to exist.
func Load(p *paths.Paths, path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit && p != nil {
		path = p.UserConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv(append([]string{"token"}, tokenEnvVars...)...); err != nil {
		return nil, nil, fmt.Errorf("failed to bind token environment: %w", err)
	}

	usedFile := ""
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			if explicit || !isNotExist(err) {
				return nil, nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			usedFile = path
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, nil, err
	}
	cfg.path = usedFile
	cfg.tokenSource = tokenSource(v)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, v, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func tokenSource(v *viper.Viper) paths.ConfigSource {
	for _, name := range tokenEnvVars {
		if os.Getenv(name) != "" {
			return paths.SourceEnvVar
		}
	}
	if v.InConfig("token") && v.GetString("token") != "" {
		return paths.SourceUserConfig
	}
	return paths.SourceUnknown
}

// WatchConfig calls onConfigChange with the reloaded config whenever the
// config file changes. Invalid reloads are logged and skipped.
func WatchConfig(v *viper.Viper, onConfigChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	if _, err := os.Stat(v.ConfigFileUsed()); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := unmarshal(v)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			log.Error().Err(err).Str("file", e.Name).Msg("ignoring config reload")
			return
		}
		cfg.path = v.ConfigFileUsed()
		cfg.tokenSource = tokenSource(v)
		log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("config reloaded")
		onConfigChange(cfg)
	})
	v.WatchConfig()
}

// Path returns the config file that was read, or "" when none was found
func (c *Config) Path() string {
	return c.path
}

// TokenSource reports where the token was found
func (c *Config) TokenSource() paths.ConfigSource {
	if c.Token == "" {
		return paths.SourceUnknown
	}
	return c.tokenSource
}

// SetToken replaces the token, recording where it came from
func (c *Config) SetToken(token string, source paths.ConfigSource) {
	c.Token = strings.TrimSpace(token)
	c.tokenSource = source
}

// HasToken reports whether a token is configured
func (c *Config) HasToken() bool {
	return c.Token != ""
}

// ClientOptions returns the GitHub client options described by the config
func (c *Config) ClientOptions() []github.Option {
	return []github.Option{
		github.WithAPIURL(c.APIURL),
		github.WithGraphQLURL(c.GraphQLURL),
		github.WithTimeout(c.Timeout),
	}
}

// SameEndpoint reports whether two configs would build equivalent clients
func (c *Config) SameEndpoint(other *Config) bool {
	return c.Token == other.Token &&
		c.APIURL == other.APIURL &&
		c.GraphQLURL == other.GraphQLURL &&
		c.Timeout == other.Timeout
}

func (c *Config) Validate() error {
	for key, raw := range map[string]string{"api_url": c.APIURL, "graphql_url": c.GraphQLURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}

	return nil
}

// Redacted returns a copy that is safe to print
func (c *Config) Redacted() *Config {
	out := *c
	out.Token = MaskToken(c.Token)
	return &out
}

// MaskToken keeps the last four characters of a token
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}

// Save writes the config as YAML. The token is only written when withToken is set.
func (c *Config) Save(path string, withToken bool) error {
	out := *c
	if !withToken {
		out.Token = ""
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# restatus configuration
#
# - token: GitHub token (prefer RESTATUS_TOKEN or GITHUB_TOKEN)
# - api_url: REST API base URL
# - graphql_url: GraphQL endpoint
# - timeout: per-request timeout such as 30s (0 disables it)
# - debug: write debug events to the log file
# - history_size: number of recent pull requests to remember
#
# Every key can be overridden with RESTATUS_<KEY>.

`
	fullContent := header + string(data)

	if err := os.WriteFile(path, []byte(fullContent), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
