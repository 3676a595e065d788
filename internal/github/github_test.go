package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

const testToken = "ghp_test"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(testToken, WithAPIURL(srv.URL), WithGraphQLURL(srv.URL+"/graphql"))
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(testToken)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, client.APIURL())
	assert.Equal(t, DefaultGraphQLURL, client.GraphQLURL())
}

func TestNewClientAddsTrailingSlash(t *testing.T) {
	client, err := NewClient(testToken, WithAPIURL("https://ghe.example.com/api/v3"), WithTimeout(time.Second))
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3/", client.APIURL())
}

func TestRunGraphQLQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body graphqlRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "query { viewer { login } }", body.Query)
		assert.Nil(t, body.Variables)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"viewer":{"login":"octocat"}}}`))
	})

	resp, err := client.RunGraphQLQuery(context.Background(), "query { viewer { login } }", nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"viewer":{"login":"octocat"}}`, string(resp.Data))
}

func TestRunGraphQLQueryRequestError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`, wantMsg: "Bad credentials"},
		{name: "bad gateway", status: http.StatusBadGateway, body: "upstream down\nmore", wantMsg: "upstream down"},
		{name: "redirect", status: http.StatusNotModified, body: "", wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.RunGraphQLQuery(context.Background(), "query {}", nil)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr), "expected *RequestError, got %v", err)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.wantMsg, reqErr.Message)
		})
	}
}

func TestRunGraphQLQueryMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.RunGraphQLQuery(context.Background(), "query {}", nil)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestRunGraphQLQueryTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewClient(testToken, WithGraphQLURL(srv.URL+"/graphql"))
	require.NoError(t, err)

	_, err = client.RunGraphQLQuery(context.Background(), "query {}", nil)
	require.Error(t, err)

	var reqErr *RequestError
	var pe *ParseError
	assert.False(t, errors.As(err, &reqErr))
	assert.False(t, errors.As(err, &pe))
}

func TestCreateStatusCheck(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/acme/widgets/statuses/abc123", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"state":       "success",
			"target_url":  "https://ci.example.com/1",
			"description": "",
			"context":     "ci/b",
		}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"state":"success","context":"ci/b"}`))
	})

	err := client.CreateStatusCheck(context.Background(), "acme", "widgets", "abc123", models.StatusInput{
		Context:   "ci/b",
		TargetURL: "https://ci.example.com/1",
		State:     models.StateSuccess,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCreateStatusCheckIgnoresBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateStatusCheck(context.Background(), "acme", "widgets", "abc123", models.StatusInput{
		Context: "ci/b",
		State:   models.StatePending,
	})
	assert.NoError(t, err)
}

func TestCreateStatusCheckRequestError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "validation failed", status: http.StatusUnprocessableEntity},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			err := client.CreateStatusCheck(context.Background(), "acme", "widgets", "abc123", models.StatusInput{
				Context: "ci/b",
				State:   models.StateFailure,
			})

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr), "expected *RequestError, got %v", err)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, "nope", reqErr.Message)
			assert.Equal(t, 1, calls, "no retries")
		})
	}
}
