package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

const projectsKeyPrefix = "portfolio:projects:" // portfolio:projects:{uid} -> JSON list

// RedisStore keeps each owner's list as one JSON string value.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) List(ctx context.Context, ownerID string) (out []domain.Project, err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendRedis, "list", start, err) }(time.Now())

	data, err := s.client.Get(ctx, s.key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	return nonNil(projects), nil
}

func (s *RedisStore) Replace(ctx context.Context, ownerID string, projects []domain.Project) (err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendRedis, "replace", start, err) }(time.Now())

	if err := ownerRequired(ownerID); err != nil {
		return err
	}
	data, err := json.Marshal(nonNil(projects))
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}
	if err := s.client.Set(ctx, s.key(ownerID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set projects: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) key(ownerID string) string {
	return projectsKeyPrefix + ownerID
}
