// Package reconcile keeps a fetched commit's status list in step with the
// statuses this client creates, without fetching it again.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

var (
	ErrNoCommit        = errors.New("no commit loaded")
	ErrIndexOutOfRange = errors.New("status index out of range")
)

// Intent is a user request to change the status list
type Intent interface {
	// input builds the payload sent to GitHub for this intent
	input(c models.Commit) (models.StatusInput, error)
	apply(c models.Commit, in models.StatusInput) models.Commit
}

// Create adds a new context in front of the existing ones. Contexts sharing
// the same name are not merged.
type Create struct {
	Input models.StatusInput
}

// Edit posts a new state for the context at Index. The context name is taken
// from the commit and cannot change.
type Edit struct {
	Index       int
	Description string
	TargetURL   string
	State       models.State
}

func (i Create) input(models.Commit) (models.StatusInput, error) {
	return i.Input, nil
}

func (i Create) apply(c models.Commit, in models.StatusInput) models.Commit {
	old := c.Contexts()
	contexts := make([]models.StatusContext, 0, len(old)+1)
	contexts = append(contexts, in.StatusContext())
	contexts = append(contexts, old...)
	return models.Commit{OID: c.OID, Status: &models.StatusList{Contexts: contexts}}
}

func (i Edit) input(c models.Commit) (models.StatusInput, error) {
	contexts := c.Contexts()
	if i.Index < 0 || i.Index >= len(contexts) {
		return models.StatusInput{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i.Index, len(contexts))
	}
	return models.StatusInput{
		Context:     contexts[i.Index].Context,
		Description: i.Description,
		TargetURL:   i.TargetURL,
		State:       i.State,
	}, nil
}

func (i Edit) apply(c models.Commit, in models.StatusInput) models.Commit {
	out := c.Clone()
	out.Status.Contexts[i.Index] = in.StatusContext()
	return out
}

// Apply returns the commit that results from a successful intent. The input
// commit is never modified.
func Apply(c models.Commit, intent Intent) (models.Commit, error) {
	in, err := prepare(c, intent)
	if err != nil {
		return c, err
	}
	return intent.apply(c, in), nil
}

func prepare(c models.Commit, intent Intent) (models.StatusInput, error) {
	if c.OID == "" {
		return models.StatusInput{}, ErrNoCommit
	}
	in, err := intent.input(c)
	if err != nil {
		return models.StatusInput{}, err
	}
	if err := in.Validate(); err != nil {
		return models.StatusInput{}, err
	}
	return in, nil
}

// StatusCreator performs the network side of an intent
type StatusCreator interface {
	CreateStatusCheck(ctx context.Context, owner, repo, commitSHA string, in models.StatusInput) error
}

// Reconciler submits intents for one pull request
type Reconciler struct {
	creator StatusCreator
	ref     models.PullRequestRef
}

func New(creator StatusCreator, ref models.PullRequestRef) *Reconciler {
	return &Reconciler{creator: creator, ref: ref}
}

// Submit creates the status on GitHub and, only once that succeeds, returns
// the updated commit. On any error the returned commit is current.
func (r *Reconciler) Submit(ctx context.Context, current models.Commit, intent Intent) (models.Commit, error) {
	in, err := prepare(current, intent)
	if err != nil {
		return current, err
	}

	if err := r.creator.CreateStatusCheck(ctx, r.ref.Owner, r.ref.Repo, current.OID, in); err != nil {
		log.Warn().
			Str("pr", r.ref.String()).
			Str("context", in.Context).
			Err(err).
			Msg("status submission failed")
		return current, err
	}

	return intent.apply(current, in), nil
}
