package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if p.UserConfigDir == "" {
		t.Error("UserConfigDir should not be empty")
	}

	if p.UserStateDir == "" {
		t.Error("UserStateDir should not be empty")
	}

	if !strings.Contains(p.UserConfigDir, AppName) {
		t.Errorf("UserConfigDir should contain '%s', got: %s", AppName, p.UserConfigDir)
	}

	if !strings.Contains(p.UserStateDir, AppName) {
		t.Errorf("UserStateDir should contain '%s', got: %s", AppName, p.UserStateDir)
	}
}

func TestFileLocations(t *testing.T) {
	p := &Paths{
		UserConfigDir: filepath.Join("home", "config", AppName),
		UserStateDir:  filepath.Join("home", "state", AppName),
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", p.UserConfigFile(), filepath.Join("home", "config", AppName, ConfigFileName)},
		{"history", p.HistoryFile(), filepath.Join("home", "state", AppName, HistoryFileName)},
		{"log", p.LogFile(), filepath.Join("home", "state", AppName, LogFileName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	p := &Paths{
		UserConfigDir: filepath.Join(tmpDir, "config", AppName),
		UserStateDir:  filepath.Join(tmpDir, "state", AppName),
	}

	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() failed: %v", err)
	}

	for _, dir := range []string{p.UserConfigDir, p.UserStateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Directory %s was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0700 {
			t.Errorf("%s has mode %v, want 0700", dir, info.Mode().Perm())
		}
	}

	if p.UsingFallback("state") {
		t.Error("state directory should not use a fallback")
	}
}

func TestEnsureDirsStateFallback(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission checks are not enforced")
	}

	tmpDir := t.TempDir()
	locked := filepath.Join(tmpDir, "locked")
	if err := os.MkdirAll(locked, 0500); err != nil {
		t.Fatalf("failed to create locked dir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0700) })

	p := &Paths{
		UserConfigDir: filepath.Join(tmpDir, "config", AppName),
		UserStateDir:  filepath.Join(locked, "state", AppName),
	}

	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() should tolerate a state directory failure: %v", err)
	}

	if !p.UsingFallback("state") {
		t.Error("expected the state directory to fall back")
	}
	if !strings.HasPrefix(p.UserStateDir, os.TempDir()) {
		t.Errorf("fallback state dir %s should be under %s", p.UserStateDir, os.TempDir())
	}
}

func TestConfigSourceString(t *testing.T) {
	tests := []struct {
		source ConfigSource
		want   string
	}{
		{SourceDefault, "default"},
		{SourceUserConfig, "config file"},
		{SourceEnvVar, "environment variable"},
		{SourceCLIFlag, "CLI flag"},
		{SourcePrompt, "prompt"},
		{SourceUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.source.String(); got != tt.want {
				t.Errorf("ConfigSource.String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestXDGStateHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG paths are Unix only")
	}

	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	want := filepath.Join(stateHome, AppName)
	if p.UserStateDir != want {
		t.Errorf("UserStateDir = %s, want %s", p.UserStateDir, want)
	}
}
