package bootstrap

import (
	"context"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
)

// OpenGitHub builds the rate-limited API client behind the shared import cache.
func OpenGitHub(ctx context.Context, cfg config.GitHubConfig) (*github.CachedSource, error) {
	client, err := github.NewAPIClient(ctx, github.APIConfig{
		Token:     cfg.Token,
		BaseURL:   cfg.APIURL,
		RateLimit: cfg.RateLimit,
	})
	if err != nil {
		return nil, err
	}
	return github.NewCachedSource(client, cfg.CacheTTL), nil
}
