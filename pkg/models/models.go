package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// State is the state of a commit status context
type State string

const (
	StateError   State = "error"
	StateFailure State = "failure"
	StatePending State = "pending"
	StateSuccess State = "success"

	// StateExpected is reported by GitHub for required contexts that have
	// not posted yet. It is display-only and can never be submitted.
	StateExpected State = "expected"
)

// SelectableStates lists the states a status can be created with, in display order
var SelectableStates = []State{StateError, StateFailure, StatePending, StateSuccess}

// ParseState normalises a state string. GraphQL reports upper-case enum values.
func ParseState(s string) State {
	return State(strings.ToLower(strings.TrimSpace(s)))
}

// Selectable reports whether the state can be sent to the statuses endpoint
func (s State) Selectable() bool {
	for _, st := range SelectableStates {
		if s == st {
			return true
		}
	}
	return false
}

func (s State) String() string {
	return string(s)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseState(raw)
	return nil
}

// StatusContext is a single named status on a commit
type StatusContext struct {
	Context     string `json:"context" yaml:"context"`
	Description string `json:"description" yaml:"description"`
	TargetURL   string `json:"targetUrl" yaml:"targetUrl"`
	State       State  `json:"state" yaml:"state"`
}

// StatusList holds the contexts of a commit in display order
type StatusList struct {
	Contexts []StatusContext `json:"contexts" yaml:"contexts"`
}

// Commit is the head commit of a pull request. Status is nil when the commit
// has never received a status, which is distinct from an empty list.
type Commit struct {
	OID    string      `json:"oid" yaml:"oid"`
	Status *StatusList `json:"status" yaml:"status"`
}

// Contexts returns the commit's contexts, or nil when it has no status
func (c Commit) Contexts() []StatusContext {
	if c.Status == nil {
		return nil
	}
	return c.Status.Contexts
}

// HasStatus reports whether GitHub returned a status object for the commit
func (c Commit) HasStatus() bool {
	return c.Status != nil
}

// Clone returns a deep copy so callers can derive new values without sharing slices
func (c Commit) Clone() Commit {
	out := Commit{OID: c.OID}
	if c.Status != nil {
		contexts := make([]StatusContext, len(c.Status.Contexts))
		copy(contexts, c.Status.Contexts)
		out.Status = &StatusList{Contexts: contexts}
	}
	return out
}

// IndexOf returns the position of the first context with the given name, or -1
func (c Commit) IndexOf(context string) int {
	for i, sc := range c.Contexts() {
		if sc.Context == context {
			return i
		}
	}
	return -1
}

// StatusInput is the payload used to create a status
type StatusInput struct {
	Context     string
	Description string
	TargetURL   string
	State       State
}

func (in StatusInput) Validate() error {
	if strings.TrimSpace(in.Context) == "" {
		return fmt.Errorf("context must not be empty")
	}
	if !in.State.Selectable() {
		return fmt.Errorf("state %q cannot be submitted (use one of error, failure, pending, success)", in.State)
	}
	return nil
}

// StatusContext converts the input into the context that GitHub will report
func (in StatusInput) StatusContext() StatusContext {
	return StatusContext{
		Context:     in.Context,
		Description: in.Description,
		TargetURL:   in.TargetURL,
		State:       in.State,
	}
}

// PullRequestRef identifies a pull request
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// URL returns the canonical web URL of the pull request
func (r PullRequestRef) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", r.Owner, r.Repo, r.Number)
}
