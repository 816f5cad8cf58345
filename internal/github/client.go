package github

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Kamar-Folarin/portfolio-sync/internal/models"
	"github.com/Kamar-Folarin/portfolio-sync/pkg/utils"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 100
)

// RateLimitInfo holds the last rate limit reported by GitHub
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime time.Time
}

// Client is a thin wrapper around go-github that maps responses into
// models and applies retry and pagination limits.
type Client struct {
	gh     *github.Client
	logger *logrus.Logger

	maxRetries      int
	initialBackoff  time.Duration
	maxBackoff      time.Duration
	retryMultiplier float64

	pageSize int
	maxPages int

	mu            sync.RWMutex
	rateLimitInfo RateLimitInfo

	baseURL    string
	httpClient *http.Client
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithRetryConfig configures retry behavior
func WithRetryConfig(maxRetries int, initialBackoff, maxBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
		c.maxBackoff = maxBackoff
	}
}

// WithRetryMultiplier sets the backoff growth factor.
func WithRetryMultiplier(m float64) ClientOption {
	return func(c *Client) {
		if m >= 1 {
			c.retryMultiplier = m
		}
	}
}

// WithPagination overrides the page size and the hard page cap.
func WithPagination(pageSize, maxPages int) ClientOption {
	return func(c *Client) {
		if pageSize > 0 {
			c.pageSize = pageSize
		}
		if maxPages > 0 {
			c.maxPages = maxPages
		}
	}
}

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying transport. The token is ignored
// when this option is used.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a GitHub client. An empty token makes anonymous requests.
func NewClient(token string, logger *logrus.Logger, opts ...ClientOption) (*Client, error) {
	c := &Client{
		logger:          logger,
		maxRetries:      3,
		initialBackoff:  time.Second,
		maxBackoff:      time.Minute,
		retryMultiplier: 2.0,
		pageSize:        defaultPageSize,
		maxPages:        defaultMaxPages,
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.maxRetries < 1 {
		c.maxRetries = 1
	}

	httpClient := c.httpClient
	if httpClient == nil {
		if token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = 120 * time.Second
	}
	c.gh = github.NewClient(httpClient)

	if c.baseURL != "" {
		u, err := url.Parse(c.baseURL)
		if err != nil {
			return nil, NewValidationError("base URL", c.baseURL)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.gh.BaseURL = u
	}

	return c, nil
}

// RateLimit returns the last rate limit seen on a response.
func (c *Client) RateLimit() RateLimitInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimitInfo
}

func (c *Client) updateRateLimitInfo(resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	c.mu.Lock()
	c.rateLimitInfo = RateLimitInfo{
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		ResetTime: resp.Rate.Reset.Time,
	}
	c.mu.Unlock()
}

// ListRepositories lists the owner's public repositories in a single request.
func (c *Client) ListRepositories(ctx context.Context, owner string) ([]models.SourceRepository, error) {
	if owner == "" {
		return nil, NewValidationError("owner", "cannot be empty")
	}

	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: c.pageSize},
	}

	var repos []*github.Repository
	err := c.withBackoff(ctx, "list repositories", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		repos, resp, err = c.gh.Repositories.ListByUser(ctx, owner, opts)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	result := make([]models.SourceRepository, 0, len(repos))
	for _, r := range repos {
		repoURL := r.GetHTMLURL()
		if repoURL == "" {
			repoURL = utils.GitHubRepoURL(owner, r.GetName())
		}
		result = append(result, models.SourceRepository{
			Name:         r.GetName(),
			URL:          repoURL,
			LastModified: r.GetUpdatedAt().Time,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"owner": owner,
		"count": len(result),
	}).Debug("Listed repositories")

	return result, nil
}

// ListCommitsSince returns the repository's commits authored since the given
// time. Pagination stops at the first short, empty or failed page, and never
// goes past the page cap. A failed page is logged and whatever was already
// collected is returned without error.
func (c *Client) ListCommitsSince(ctx context.Context, owner, repo string, since time.Time) ([]models.SourceCommit, error) {
	if owner == "" {
		return nil, NewValidationError("owner", "cannot be empty")
	}
	if repo == "" {
		return nil, NewValidationError("repo", "cannot be empty")
	}

	logger := c.logger.WithFields(logrus.Fields{
		"owner": owner,
		"repo":  repo,
		"since": since.Format(time.RFC3339),
	})

	var all []models.SourceCommit
	for page := 1; ; page++ {
		if page > c.maxPages {
			logger.WithField("max_pages", c.maxPages).Warn("Reached maximum page limit")
			break
		}

		opts := &github.CommitsListOptions{
			Since:       since,
			ListOptions: github.ListOptions{Page: page, PerPage: c.pageSize},
		}

		var commits []*github.RepositoryCommit
		err := c.withBackoff(ctx, "list commits", func() (*github.Response, error) {
			var resp *github.Response
			var err error
			commits, resp, err = c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
			return resp, err
		})
		if err != nil {
			logger.WithError(err).WithField("page", page).Warn("Failed to fetch commits page, stopping pagination")
			break
		}

		for _, rc := range commits {
			all = append(all, toSourceCommit(rc))
		}

		if len(commits) < c.pageSize {
			break
		}
	}

	logger.WithField("commits", len(all)).Debug("Fetched commits")
	return all, nil
}

func toSourceCommit(rc *github.RepositoryCommit) models.SourceCommit {
	return models.SourceCommit{
		SHA:        rc.GetSHA(),
		Message:    rc.GetCommit().GetMessage(),
		AuthorDate: rc.GetCommit().GetAuthor().GetDate().Time,
	}
}

// withBackoff runs call, retrying transport failures and 5xx responses with
// exponential backoff. Rate limit responses are returned immediately.
func (c *Client) withBackoff(ctx context.Context, op string, call func() (*github.Response, error)) error {
	backoff := c.initialBackoff
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := call()
		c.updateRateLimitInfo(resp)
		if err == nil {
			return nil
		}

		upstream := classify(op, resp, err)
		if upstream.RateLimited {
			c.logger.WithFields(logrus.Fields{
				"op":       op,
				"reset_at": upstream.ResetAt,
			}).Warn("GitHub rate limit hit")
			return upstream
		}
		if ctx.Err() != nil || !retryable(upstream) {
			return upstream
		}

		lastErr = upstream
		if attempt == c.maxRetries-1 {
			break
		}

		c.logger.WithFields(logrus.Fields{
			"op":      op,
			"attempt": attempt + 1,
			"backoff": backoff.String(),
		}).WithError(err).Warn("GitHub request failed, retrying")

		select {
		case <-ctx.Done():
			return &UpstreamError{Op: op, Err: ctx.Err()}
		case <-time.After(backoff):
		}
		backoff = time.Duration(math.Min(float64(backoff)*c.retryMultiplier, float64(c.maxBackoff)))
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func classify(op string, resp *github.Response, err error) *UpstreamError {
	upstream := &UpstreamError{Op: op, Err: err}
	if resp != nil && resp.Response != nil {
		upstream.StatusCode = resp.StatusCode
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rateErr):
		upstream.RateLimited = true
		upstream.ResetAt = rateErr.Rate.Reset.Time
	case errors.As(err, &abuseErr):
		upstream.RateLimited = true
		if d := abuseErr.GetRetryAfter(); d > 0 {
			upstream.ResetAt = time.Now().Add(d)
		}
	case upstream.StatusCode == http.StatusTooManyRequests:
		upstream.RateLimited = true
	}
	return upstream
}

func retryable(e *UpstreamError) bool {
	// no status means the request never got a response
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}
