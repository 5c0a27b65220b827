// Package repository persists whole per-owner project lists.
package repository

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendBolt     = "bolt"
	BackendDocstore = "docstore"
	BackendRemote   = "remote"
)

// Store reads and replaces an owner's full project list. The list is the
// unit of persistence: Replace overwrites whatever was stored before.
type Store interface {
	// List returns the owner's records, or an empty list when none are stored.
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
	Replace(ctx context.Context, ownerID string, projects []domain.Project) error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

func ownerRequired(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id required")
	}
	return nil
}

// nonNil keeps an empty list encoded as [] rather than null.
func nonNil(projects []domain.Project) []domain.Project {
	if projects == nil {
		return []domain.Project{}
	}
	return projects
}
