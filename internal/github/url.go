package github

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

// URLFormatHint is shown to users when a pull request URL cannot be parsed
const URLFormatHint = "Could not parse URL. Please enter a URL in the format https://github.com/owner/repo/pull/123."

// Anything after the number must start a new path segment, query or fragment.
var pullRequestURLRegex = regexp.MustCompile(`^https://github\.com/([\w-]+)/([\w-]+)/pull/(\d+)(?:[/?#].*)?$`)

// ParsePullRequestURL extracts owner, repository and number from a pull request URL
func ParsePullRequestURL(raw string) (models.PullRequestRef, error) {
	raw = strings.TrimSpace(raw)

	m := pullRequestURLRegex.FindStringSubmatch(raw)
	if m == nil {
		return models.PullRequestRef{}, &ParseError{Input: raw, Reason: "not a pull request URL"}
	}

	number, err := strconv.Atoi(m[3])
	if err != nil || number <= 0 {
		return models.PullRequestRef{}, &ParseError{Input: raw, Reason: "invalid pull request number", Err: err}
	}

	return models.PullRequestRef{Owner: m[1], Repo: m[2], Number: number}, nil
}
