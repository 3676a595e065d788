package git

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxDepth bounds the upward search for a .git directory
const maxDepth = 10

var repoFormatRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// Repository is a GitHub repository detected from a local checkout
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// PullRequestURLPrefix returns the URL a pull request number can be appended to
func (r Repository) PullRequestURLPrefix() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/", r.Owner, r.Name)
}

// DetectRepository finds the origin remote of the git checkout containing dir
func DetectRepository(dir string) (Repository, error) {
	gitConfigPath, err := findGitConfig(dir)
	if err != nil {
		return Repository{}, err
	}

	return parseGitConfig(gitConfigPath)
}

// DetectFromWorkingDir is DetectRepository for the current working directory
func DetectFromWorkingDir() (Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Repository{}, fmt.Errorf("failed to get current working directory: %w", err)
	}
	return DetectRepository(cwd)
}

// findGitConfig locates .git/config by searching upward from dir
func findGitConfig(dir string) (string, error) {
	for range maxDepth {
		configPath := filepath.Join(dir, ".git", "config")

		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no .git/config found - not in a git repository")
}

// parseGitConfig reads the origin url from a git config file
func parseGitConfig(configPath string) (Repository, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return Repository{}, fmt.Errorf("failed to read git config: %w", err)
	}

	var inOrigin bool
	var url string

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			inOrigin = trimmed == `[remote "origin"]`
			continue
		}

		if !inOrigin {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if ok && strings.TrimSpace(key) == "url" {
			url = strings.TrimSpace(value)
			break
		}
	}

	if url == "" {
		return Repository{}, fmt.Errorf("no origin remote found in git config")
	}

	repo, ok := extractRepoFromURL(url)
	if !ok {
		return Repository{}, fmt.Errorf("origin is not a GitHub repository: %s", url)
	}

	return repo, nil
}

// extractRepoFromURL converts GitHub remote URLs to owner/name.
// Handles:
//   - https://github.com/owner/repo(.git)
//   - ssh://git@github.com/owner/repo(.git)
//   - git@github.com:owner/repo(.git)
func extractRepoFromURL(url string) (Repository, bool) {
	var path string

	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "ssh://"):
		idx := strings.Index(url, "github.com/")
		if idx == -1 {
			return Repository{}, false
		}
		path = url[idx+len("github.com/"):]
	case strings.HasPrefix(url, "git@github.com:"):
		path = strings.TrimPrefix(url, "git@github.com:")
	default:
		return Repository{}, false
	}

	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")

	if !repoFormatRegex.MatchString(path) {
		return Repository{}, false
	}

	owner, name, _ := strings.Cut(path, "/")
	return Repository{Owner: owner, Name: name}, true
}
