package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
)

// ProxyClient lists repositories through the portfolio server's
// /github/repos/:username endpoint.
type ProxyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyClient creates a proxy client for the server at baseURL.
func NewProxyClient(baseURL string) *ProxyClient {
	return &ProxyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Repositories fetches the user's repositories, most-starred first.
func (c *ProxyClient) Repositories(ctx context.Context, username string) ([]RepositorySummary, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}

	endpoint := fmt.Sprintf("%s/github/repos/%s", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.GitHubRequests.WithLabelValues("proxy", "unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.GitHubRequests.WithLabelValues("proxy", "not_found").Inc()
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		metrics.GitHubRequests.WithLabelValues("proxy", "upstream").Inc()
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	var repos []RepositorySummary
	if err := json.Unmarshal(body, &repos); err != nil {
		metrics.GitHubRequests.WithLabelValues("proxy", "error").Inc()
		return nil, fmt.Errorf("failed to decode repositories: %w", err)
	}
	metrics.GitHubRequests.WithLabelValues("proxy", "success").Inc()

	SortByStars(repos)
	return repos, nil
}

// errorDetail extracts {"error": "..."} from a JSON body, else the trimmed text.
func errorDetail(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
