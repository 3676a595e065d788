package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Cloudsky01/gh-restatus/internal/github"
	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreateStatusCheck(ctx context.Context, owner, repo, commitSHA string, in models.StatusInput) error {
	args := m.Called(ctx, owner, repo, commitSHA, in)
	return args.Error(0)
}

var ref = models.PullRequestRef{Owner: "acme", Repo: "widgets", Number: 42}

func commitWith(contexts ...models.StatusContext) models.Commit {
	return models.Commit{OID: "abc123", Status: &models.StatusList{Contexts: contexts}}
}

func TestApplyCreatePrepends(t *testing.T) {
	current := commitWith(models.StatusContext{Context: "ci/a", State: models.StatePending})

	next, err := Apply(current, Create{Input: models.StatusInput{Context: "ci/b", State: models.StateSuccess}})
	require.NoError(t, err)

	assert.Equal(t, []models.StatusContext{
		{Context: "ci/b", State: models.StateSuccess},
		{Context: "ci/a", State: models.StatePending},
	}, next.Contexts())
	assert.Equal(t, "abc123", next.OID)
	assert.Len(t, current.Contexts(), 1, "input commit must not change")
}

func TestApplyCreateDoesNotDedupe(t *testing.T) {
	current := commitWith(models.StatusContext{Context: "ci/a", State: models.StatePending})

	next, err := Apply(current, Create{Input: models.StatusInput{Context: "ci/a", State: models.StateFailure}})
	require.NoError(t, err)

	require.Len(t, next.Contexts(), 2)
	assert.Equal(t, models.StateFailure, next.Contexts()[0].State)
	assert.Equal(t, models.StatePending, next.Contexts()[1].State)
}

func TestApplyCreateOnCommitWithoutStatus(t *testing.T) {
	current := models.Commit{OID: "abc123"}

	next, err := Apply(current, Create{Input: models.StatusInput{Context: "ci/a", State: models.StateSuccess}})
	require.NoError(t, err)

	assert.True(t, next.HasStatus())
	assert.Equal(t, []models.StatusContext{{Context: "ci/a", State: models.StateSuccess}}, next.Contexts())
	assert.False(t, current.HasStatus())
}

func TestApplyEditReplacesInPlace(t *testing.T) {
	current := commitWith(
		models.StatusContext{Context: "ci/a", State: models.StatePending},
		models.StatusContext{Context: "ci/b", State: models.StateSuccess},
	)

	next, err := Apply(current, Edit{Index: 0, State: models.StateSuccess})
	require.NoError(t, err)

	assert.Equal(t, []models.StatusContext{
		{Context: "ci/a", State: models.StateSuccess},
		{Context: "ci/b", State: models.StateSuccess},
	}, next.Contexts())
	assert.Equal(t, models.StatePending, current.Contexts()[0].State, "input commit must not change")
}

func TestApplyEditKeepsContextName(t *testing.T) {
	current := commitWith(
		models.StatusContext{Context: "ci/a", Description: "old", TargetURL: "https://old", State: models.StatePending},
		models.StatusContext{Context: "ci/b", State: models.StateSuccess},
		models.StatusContext{Context: "ci/c", State: models.StateError},
	)

	next, err := Apply(current, Edit{Index: 1, Description: "new", TargetURL: "https://new", State: models.StateFailure})
	require.NoError(t, err)

	require.Len(t, next.Contexts(), 3)
	assert.Equal(t, current.Contexts()[0], next.Contexts()[0])
	assert.Equal(t, models.StatusContext{Context: "ci/b", Description: "new", TargetURL: "https://new", State: models.StateFailure}, next.Contexts()[1])
	assert.Equal(t, current.Contexts()[2], next.Contexts()[2])
}

func TestApplyRejectsInvalidIntents(t *testing.T) {
	current := commitWith(models.StatusContext{Context: "ci/a", State: models.StatePending})

	tests := []struct {
		name    string
		commit  models.Commit
		intent  Intent
		wantErr error
	}{
		{name: "edit past end", commit: current, intent: Edit{Index: 1, State: models.StateSuccess}, wantErr: ErrIndexOutOfRange},
		{name: "edit negative", commit: current, intent: Edit{Index: -1, State: models.StateSuccess}, wantErr: ErrIndexOutOfRange},
		{name: "edit without status", commit: models.Commit{OID: "abc123"}, intent: Edit{Index: 0, State: models.StateSuccess}, wantErr: ErrIndexOutOfRange},
		{name: "no commit", commit: models.Commit{}, intent: Create{Input: models.StatusInput{Context: "ci/b", State: models.StateSuccess}}, wantErr: ErrNoCommit},
		{name: "expected state", commit: current, intent: Edit{Index: 0, State: models.StateExpected}},
		{name: "empty context", commit: current, intent: Create{Input: models.StatusInput{State: models.StateSuccess}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Apply(tt.commit, tt.intent)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.commit, next)
		})
	}
}

func TestSubmitCreate(t *testing.T) {
	creator := new(mockCreator)
	in := models.StatusInput{Context: "ci/b", Description: "deployed", TargetURL: "https://ci/b", State: models.StateSuccess}
	creator.On("CreateStatusCheck", mock.Anything, "acme", "widgets", "abc123", in).Return(nil).Once()

	current := commitWith(models.StatusContext{Context: "ci/a", State: models.StatePending})
	next, err := New(creator, ref).Submit(context.Background(), current, Create{Input: in})
	require.NoError(t, err)

	assert.Equal(t, "ci/b", next.Contexts()[0].Context)
	assert.Equal(t, "ci/a", next.Contexts()[1].Context)
	creator.AssertExpectations(t)
}

func TestSubmitEditSendsOriginalContext(t *testing.T) {
	creator := new(mockCreator)
	creator.On("CreateStatusCheck", mock.Anything, "acme", "widgets", "abc123", models.StatusInput{
		Context: "ci/b",
		State:   models.StateError,
	}).Return(nil).Once()

	current := commitWith(
		models.StatusContext{Context: "ci/a", State: models.StatePending},
		models.StatusContext{Context: "ci/b", State: models.StateSuccess},
	)
	next, err := New(creator, ref).Submit(context.Background(), current, Edit{Index: 1, State: models.StateError})
	require.NoError(t, err)

	assert.Equal(t, models.StateError, next.Contexts()[1].State)
	creator.AssertExpectations(t)
}

func TestSubmitFailureLeavesStateUnchanged(t *testing.T) {
	current := commitWith(
		models.StatusContext{Context: "ci/a", State: models.StatePending},
		models.StatusContext{Context: "ci/b", State: models.StateSuccess},
	)
	before := current.Clone()

	intents := []Intent{
		Create{Input: models.StatusInput{Context: "ci/c", State: models.StateSuccess}},
		Edit{Index: 0, State: models.StateSuccess},
	}

	for _, intent := range intents {
		creator := new(mockCreator)
		failure := &github.RequestError{StatusCode: 422}
		creator.On("CreateStatusCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(failure).Once()

		next, err := New(creator, ref).Submit(context.Background(), current, intent)

		var reqErr *github.RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, 422, reqErr.StatusCode)
		assert.Equal(t, before, next)
		assert.Equal(t, before, current)
		creator.AssertExpectations(t)
	}
}

func TestSubmitInvalidIntentMakesNoCall(t *testing.T) {
	creator := new(mockCreator)
	current := commitWith(models.StatusContext{Context: "ci/a", State: models.StatePending})

	_, err := New(creator, ref).Submit(context.Background(), current, Edit{Index: 5, State: models.StateSuccess})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	creator.AssertNotCalled(t, "CreateStatusCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
