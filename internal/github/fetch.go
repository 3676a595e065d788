package github

import (
	"context"
	"encoding/json"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

const statusChecksQuery = `query StatusChecks($owner: String!, $name: String!, $number: Int!) {
  repository(owner: $owner, name: $name) {
    pullRequest(number: $number) {
      commits(last: 1) {
        nodes {
          commit {
            oid
            status {
              contexts {
                context
                description
                targetUrl
                state
              }
            }
          }
        }
      }
    }
  }
}`

type statusChecksData struct {
	Repository *struct {
		PullRequest *struct {
			Commits struct {
				Nodes []struct {
					Commit *models.Commit `json:"commit"`
				} `json:"nodes"`
			} `json:"commits"`
		} `json:"pullRequest"`
	} `json:"repository"`
}

// FetchStatusChecks returns the last commit of a pull request with its status contexts
func (c *Client) FetchStatusChecks(ctx context.Context, ref models.PullRequestRef) (models.Commit, error) {
	resp, err := c.RunGraphQLQuery(ctx, statusChecksQuery, map[string]any{
		"owner":  ref.Owner,
		"name":   ref.Repo,
		"number": ref.Number,
	})
	if err != nil {
		return models.Commit{}, err
	}

	return decodeStatusChecks(resp)
}

func decodeStatusChecks(resp *GraphQLResponse) (models.Commit, error) {
	if len(resp.Errors) > 0 {
		return models.Commit{}, &ParseError{Reason: resp.ErrorMessages()}
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return models.Commit{}, &ParseError{Reason: "response has no data"}
	}

	var data statusChecksData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return models.Commit{}, &ParseError{Reason: "unexpected response shape", Err: err}
	}

	switch {
	case data.Repository == nil:
		return models.Commit{}, &ParseError{Reason: "repository not found"}
	case data.Repository.PullRequest == nil:
		return models.Commit{}, &ParseError{Reason: "pull request not found"}
	case len(data.Repository.PullRequest.Commits.Nodes) == 0:
		return models.Commit{}, &ParseError{Reason: "pull request has no commits"}
	}

	commit := data.Repository.PullRequest.Commits.Nodes[0].Commit
	if commit == nil || commit.OID == "" {
		return models.Commit{}, &ParseError{Reason: "commit is missing its oid"}
	}

	return *commit, nil
}
