// Package github is the repository import adapter: it lists a user's public
// repositories from GitHub, either directly or through the portfolio proxy.
package github

import (
	"context"
	"sort"
	"strings"
	"time"
)

// RepositorySummary is the subset of a GitHub repository used for imports.
// JSON names follow GitHub's REST payload so proxied responses stay familiar.
type RepositorySummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"html_url"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics"`
	Stars       int       `json:"stargazers_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Fork        bool      `json:"fork"`
}

// Source lists the repositories of a platform user.
type Source interface {
	Repositories(ctx context.Context, username string) ([]RepositorySummary, error)
}

// SortByStars orders repositories most-starred first, keeping the upstream
// order between equal counts.
func SortByStars(repos []RepositorySummary) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Stars > repos[j].Stars
	})
}

// NormalizeUsername trims the input and, when a profile URL was pasted,
// keeps only its last path segment. Case is preserved.
func NormalizeUsername(in string) (string, error) {
	name := strings.TrimSpace(in)
	if strings.Contains(name, "/") {
		parts := strings.Split(strings.TrimRight(name, "/"), "/")
		name = parts[len(parts)-1]
	}
	if name == "" {
		return "", ErrUsernameRequired
	}
	return name, nil
}
