package github

import (
	"context"
	"errors"
	"fmt"

	gh "github.com/google/go-github/v75/github"
	"github.com/rs/zerolog/log"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

// CreateStatusCheck posts a new status for commitSHA. The response body is ignored.
func (c *Client) CreateStatusCheck(ctx context.Context, owner, repo, commitSHA string, in models.StatusInput) error {
	status := &gh.RepoStatus{
		State:       gh.Ptr(string(in.State)),
		TargetURL:   gh.Ptr(in.TargetURL),
		Description: gh.Ptr(in.Description),
		Context:     gh.Ptr(in.Context),
	}

	_, resp, err := c.rest.Repositories.CreateStatus(ctx, owner, repo, commitSHA, status)
	var accepted *gh.AcceptedError
	if errors.As(err, &accepted) {
		err = nil
	}
	if err != nil {
		if resp != nil && resp.Response != nil && !isSuccess(resp.StatusCode) {
			return &RequestError{StatusCode: resp.StatusCode, Message: errorResponseMessage(err), Err: err}
		}
		return fmt.Errorf("failed to create status %q on %s/%s@%s: %w", in.Context, owner, repo, shortSHA(commitSHA), err)
	}

	log.Info().
		Str("repo", owner+"/"+repo).
		Str("sha", shortSHA(commitSHA)).
		Str("context", in.Context).
		Str("state", string(in.State)).
		Msg("status created")
	return nil
}

func errorResponseMessage(err error) string {
	var er *gh.ErrorResponse
	if errors.As(err, &er) {
		return er.Message
	}
	return ""
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
