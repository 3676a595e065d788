package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application name used in config paths
	AppName = "restatus"

	// ConfigFileName is the name of the config file
	ConfigFileName = "config.yaml"

	// HistoryFileName is the name of the recent pull request history file
	HistoryFileName = "history.yaml"

	// LogFileName is the name of the log file written while the TUI runs
	LogFileName = "restatus.log"

	// DotEnvFileName is loaded from the working directory before the environment is read
	DotEnvFileName = ".env"
)

// ConfigSource indicates where a setting came from
type ConfigSource int

const (
	SourceUnknown ConfigSource = iota
	SourceDefault
	SourceUserConfig
	SourceEnvVar
	SourceCLIFlag
	SourcePrompt
)

func (s ConfigSource) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceUserConfig:
		return "config file"
	case SourceEnvVar:
		return "environment variable"
	case SourceCLIFlag:
		return "CLI flag"
	case SourcePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// Paths provides access to all application paths following XDG Base Directory specification
type Paths struct {
	// UserConfigDir is the user's config directory (~/.config/restatus)
	UserConfigDir string

	// UserStateDir is the user's state directory (~/.local/state/restatus)
	UserStateDir string

	// usingFallbacks tracks which directories are using fallback locations
	usingFallbacks map[string]bool
}

// New creates a new Paths instance with XDG-compliant directories
func New() (*Paths, error) {
	p := &Paths{
		usingFallbacks: make(map[string]bool),
	}

	// XDG_CONFIG_HOME or ~/.config on Unix, %AppData% on Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config directory: %w", err)
	}
	p.UserConfigDir = filepath.Join(configDir, AppName)

	// XDG_STATE_HOME or ~/.local/state on Unix
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	p.UserStateDir = filepath.Join(stateDir, AppName)

	return p, nil
}

// UserConfigFile returns the path to the user's main config file
func (p *Paths) UserConfigFile() string {
	return filepath.Join(p.UserConfigDir, ConfigFileName)
}

// HistoryFile returns the path to the recent pull request history
func (p *Paths) HistoryFile() string {
	return filepath.Join(p.UserStateDir, HistoryFileName)
}

// LogFile returns the path of the TUI log file
func (p *Paths) LogFile() string {
	return filepath.Join(p.UserStateDir, LogFileName)
}

// UsingFallback reports whether the named directory ("config" or "state") was relocated
func (p *Paths) UsingFallback(name string) bool {
	return p.usingFallbacks[name]
}

// dirSpec defines a directory with its criticality and purpose
type dirSpec struct {
	path     *string // pointer to the path field in Paths struct
	pathName string  // name of the directory (for error messages)
	critical bool    // if true, app cannot run without it
	purpose  string  // description of what the directory is for
}

// EnsureDirs creates all necessary directories if they don't exist.
// Directories are created with permission 0700. The state directory falls
// back to the temp directory on permission errors; the config directory is
// required.
func (p *Paths) EnsureDirs() error {
	if p.usingFallbacks == nil {
		p.usingFallbacks = make(map[string]bool)
	}

	specs := []dirSpec{
		{&p.UserConfigDir, "config", true, "configuration"},
		{&p.UserStateDir, "state", false, "state storage"},
	}

	for _, spec := range specs {
		if err := p.ensureDir(spec); err != nil {
			if spec.critical {
				return err
			}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return nil
}

func (p *Paths) ensureDir(spec dirSpec) error {
	originalPath := *spec.path

	if err := os.MkdirAll(originalPath, 0700); err != nil {
		if os.IsPermission(err) {
			if !spec.critical {
				if fallbackErr := p.tryFallbackDir(spec, originalPath); fallbackErr == nil {
					return nil
				}
			}
			return p.formatPermissionError(originalPath, spec.purpose, err)
		}

		return fmt.Errorf("failed to create %s directory %s: %w", spec.purpose, originalPath, err)
	}

	return nil
}

// tryFallbackDir attempts to create a fallback directory in the temp location
func (p *Paths) tryFallbackDir(spec dirSpec, originalPath string) error {
	fallbackPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", AppName, spec.pathName))

	if err := os.MkdirAll(fallbackPath, 0700); err != nil {
		return fmt.Errorf("fallback directory creation failed: %w", err)
	}

	*spec.path = fallbackPath
	p.usingFallbacks[spec.pathName] = true

	fmt.Fprintf(os.Stderr, "Warning: using fallback %s directory: %s (permission denied for %s)\n",
		spec.purpose, fallbackPath, originalPath)

	return nil
}

// formatPermissionError creates a user-friendly permission error message
func (p *Paths) formatPermissionError(path, purpose string, originalErr error) error {
	parent := filepath.Dir(path)
	return fmt.Errorf(
		"permission denied: cannot create %s directory %s\n\n"+
			"Possible solutions:\n"+
			"  1. Fix permissions: sudo chown -R $USER %s\n"+
			"  2. Set custom location: export XDG_STATE_HOME=/tmp/%s-state\n"+
			"  3. Check parent directory exists and is writable: %s\n\n"+
			"Original error: %v",
		purpose, path, parent, AppName, parent, originalErr)
}
