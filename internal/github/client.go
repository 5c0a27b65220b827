package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
)

// APIConfig configures the direct GitHub REST client.
type APIConfig struct {
	// Token is optional; anonymous calls are limited to 60 requests per hour.
	Token string
	// BaseURL overrides https://api.github.com/ (tests, GitHub Enterprise).
	BaseURL string
	// RateLimit is the client-side request rate per second. Default: 5
	RateLimit float64
	// Burst defaults to 10.
	Burst int
	// Timeout applies to each HTTP call. Default: 15 seconds
	Timeout time.Duration
	// PerPage bounds the number of repositories returned. Default: 100
	PerPage int
}

// APIClient lists repositories via the GitHub REST API.
type APIClient struct {
	client  *gh.Client
	limiter *rate.Limiter
	perPage int
}

// NewAPIClient creates a GitHub client, authenticated when a token is set.
func NewAPIClient(ctx context.Context, cfg APIConfig) (*APIClient, error) {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PerPage <= 0 || cfg.PerPage > 100 {
		cfg.PerPage = 100
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = cfg.Timeout
	}

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	return &APIClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		perPage: cfg.PerPage,
	}, nil
}

// Repositories returns the user's public repositories, most-starred first.
func (c *APIClient) Repositories(ctx context.Context, username string) ([]RepositorySummary, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	repos, _, err := c.client.Repositories.List(ctx, username, &gh.RepositoryListOptions{
		Type:        "owner",
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	})
	if err != nil {
		err = classifyAPIError(ctx, err)
		metrics.GitHubRequests.WithLabelValues("api", resultLabel(err)).Inc()
		return nil, err
	}
	metrics.GitHubRequests.WithLabelValues("api", "success").Inc()

	out := make([]RepositorySummary, 0, len(repos))
	for _, r := range repos {
		out = append(out, fromAPI(r))
	}
	SortByStars(out)
	return out, nil
}

func fromAPI(r *gh.Repository) RepositorySummary {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return RepositorySummary{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		URL:         r.GetHTMLURL(),
		Language:    r.GetLanguage(),
		Topics:      topics,
		Stars:       r.GetStargazersCount(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		Fork:        r.GetFork(),
	}
}

func classifyAPIError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		if errResp.Response.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return &UpstreamError{StatusCode: errResp.Response.StatusCode, Detail: errResp.Message}
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &UpstreamError{StatusCode: http.StatusForbidden, Detail: rateErr.Message}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &UpstreamError{StatusCode: http.StatusForbidden, Detail: abuseErr.Message}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	default:
		return "error"
	}
}
