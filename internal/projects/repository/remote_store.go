package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

// RemoteStore talks to a portfolio server's /projects/:uid endpoints.
type RemoteStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemoteStore creates a client for the server at baseURL. A non-empty
// token is sent as a bearer credential on writes; without one the owner is
// sent as X-User-Id, which only development servers accept.
func NewRemoteStore(baseURL, token string) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type replaceRequest struct {
	Projects []domain.Project `json:"projects"`
}

type replaceResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *RemoteStore) List(ctx context.Context, ownerID string) (out []domain.Project, err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendRemote, "list", start, err) }(time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(ownerID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := s.do(req)
	if err != nil {
		return nil, err
	}

	var projects []domain.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return nonNil(projects), nil
}

func (s *RemoteStore) Replace(ctx context.Context, ownerID string, projects []domain.Project) (err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendRemote, "replace", start, err) }(time.Now())

	if err := ownerRequired(ownerID); err != nil {
		return err
	}
	payload, err := json.Marshal(replaceRequest{Projects: nonNil(projects)})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(ownerID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	} else {
		req.Header.Set("X-User-Id", ownerID)
	}

	body, err := s.do(req)
	if err != nil {
		return err
	}

	var resp replaceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("server rejected write: %s", resp.Error)
	}
	return nil
}

func (s *RemoteStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	_, err = s.do(req)
	return err
}

func (s *RemoteStore) endpoint(ownerID string) string {
	return fmt.Sprintf("%s/projects/%s", s.baseURL, url.PathEscape(ownerID))
}

func (s *RemoteStore) do(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
