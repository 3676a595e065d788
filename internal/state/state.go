package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Cloudsky01/gh-restatus/internal/paths"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

// Entry is a pull request that was opened recently
type Entry struct {
	URL       string    `yaml:"url"`
	Owner     string    `yaml:"owner"`
	Repo      string    `yaml:"repo"`
	Number    int       `yaml:"number"`
	VisitedAt time.Time `yaml:"visitedAt"`
}

// Ref returns the pull request the entry points to
func (e Entry) Ref() models.PullRequestRef {
	return models.PullRequestRef{Owner: e.Owner, Repo: e.Repo, Number: e.Number}
}

// History is the persisted list of recent pull requests, most recent first.
// Tokens are never stored here.
type History struct {
	Entries []Entry `yaml:"entries,omitempty"`
}

// LoadWithPaths loads the history from the user state directory
func LoadWithPaths(p *paths.Paths) (*History, error) {
	return Load(p.HistoryFile())
}

// Load reads the history from a file. A missing or corrupted file yields an empty history.
func Load(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var h History
	if err := yaml.Unmarshal(data, &h); err != nil {
		return &History{}, nil
	}

	return &h, nil
}

// Save writes the history to a file, creating its directory when needed
func (h *History) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}

	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Record moves ref to the front of the history and trims it to limit entries.
// A limit of zero disables history.
func (h *History) Record(ref models.PullRequestRef, at time.Time, limit int) {
	entry := Entry{
		URL:       ref.URL(),
		Owner:     ref.Owner,
		Repo:      ref.Repo,
		Number:    ref.Number,
		VisitedAt: at.UTC(),
	}

	entries := make([]Entry, 0, len(h.Entries)+1)
	entries = append(entries, entry)
	for _, e := range h.Entries {
		if e.URL != entry.URL {
			entries = append(entries, e)
		}
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	h.Entries = entries
}

// URLs returns the URLs of all entries, most recent first
func (h *History) URLs() []string {
	urls := make([]string, len(h.Entries))
	for i, e := range h.Entries {
		urls[i] = e.URL
	}
	return urls
}

// Clear removes the history file
func Clear(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
