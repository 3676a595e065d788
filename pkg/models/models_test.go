package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"SUCCESS", StateSuccess},
		{"pending", StatePending},
		{" Failure ", StateFailure},
		{"EXPECTED", StateExpected},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseState(tt.in))
		})
	}
}

func TestStateSelectable(t *testing.T) {
	for _, s := range SelectableStates {
		assert.True(t, s.Selectable(), s)
	}
	assert.False(t, StateExpected.Selectable())
	assert.False(t, State("").Selectable())
}

func TestCommitUnmarshalNormalisesState(t *testing.T) {
	body := `{"oid":"abc123","status":{"contexts":[{"context":"ci/a","description":null,"targetUrl":"https://ci","state":"EXPECTED"}]}}`

	var c Commit
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	require.True(t, c.HasStatus())
	require.Len(t, c.Contexts(), 1)
	assert.Equal(t, StateExpected, c.Contexts()[0].State)
	assert.Equal(t, "", c.Contexts()[0].Description)
}

func TestCommitNullStatus(t *testing.T) {
	var c Commit
	require.NoError(t, json.Unmarshal([]byte(`{"oid":"abc123","status":null}`), &c))

	assert.False(t, c.HasStatus())
	assert.Nil(t, c.Contexts())
	assert.Equal(t, -1, c.IndexOf("ci/a"))
}

func TestCommitCloneDoesNotShare(t *testing.T) {
	c := Commit{OID: "abc", Status: &StatusList{Contexts: []StatusContext{{Context: "ci/a", State: StatePending}}}}

	clone := c.Clone()
	clone.Status.Contexts[0].State = StateSuccess

	assert.Equal(t, StatePending, c.Status.Contexts[0].State)
	assert.Equal(t, Commit{}.Clone(), Commit{})
}

func TestStatusInputValidate(t *testing.T) {
	assert.NoError(t, StatusInput{Context: "ci/a", State: StateSuccess}.Validate())
	assert.Error(t, StatusInput{Context: " ", State: StateSuccess}.Validate())
	assert.Error(t, StatusInput{Context: "ci/a", State: StateExpected}.Validate())
}

func TestPullRequestRef(t *testing.T) {
	ref := PullRequestRef{Owner: "acme", Repo: "widgets", Number: 42}
	assert.Equal(t, "acme/widgets#42", ref.String())
	assert.Equal(t, "https://github.com/acme/widgets/pull/42", ref.URL())
}
