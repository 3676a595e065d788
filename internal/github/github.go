package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL     = "https://api.github.com/"
	DefaultGraphQLURL = "https://api.github.com/graphql"

	userAgent = "gh-restatus"
)

// ErrMissingToken is returned when a client is built without a credential
var ErrMissingToken = errors.New("a GitHub token is required")

// Client talks to the GitHub GraphQL and REST APIs with a single bearer token
type Client struct {
	rest       *gh.Client
	httpClient *http.Client
	graphqlURL string
	apiURL     string
}

type options struct {
	apiURL     string
	graphqlURL string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*options)

// WithAPIURL overrides the REST base URL
func WithAPIURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.apiURL = u
		}
	}
}

// WithGraphQLURL overrides the GraphQL endpoint
func WithGraphQLURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.graphqlURL = u
		}
	}
}

// WithHTTPClient sets the base HTTP client. Its transport is wrapped with auth.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// NewClient builds a client bound to token
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	o := options{
		apiURL:     DefaultAPIURL,
		graphqlURL: DefaultGraphQLURL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := http.DefaultTransport
	if o.httpClient != nil && o.httpClient.Transport != nil {
		base = o.httpClient.Transport
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   &loggingTransport{base: base},
		},
		Timeout: o.timeout,
	}

	apiURL := o.apiURL
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", o.apiURL, err)
	}
	if _, err := url.Parse(o.graphqlURL); err != nil {
		return nil, fmt.Errorf("invalid GraphQL URL %q: %w", o.graphqlURL, err)
	}

	rest := gh.NewClient(httpClient)
	rest.BaseURL = baseURL
	rest.UserAgent = userAgent

	return &Client{
		rest:       rest,
		httpClient: httpClient,
		graphqlURL: o.graphqlURL,
		apiURL:     baseURL.String(),
	}, nil
}

// APIURL returns the REST base URL in use
func (c *Client) APIURL() string {
	return c.apiURL
}

// GraphQLURL returns the GraphQL endpoint in use
func (c *Client) GraphQLURL() string {
	return c.graphqlURL
}
