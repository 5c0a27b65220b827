package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

// PostgresStore keeps one row per owner holding the list as jsonb.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the portfolio_lists table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS portfolio_lists (
	owner_id   TEXT PRIMARY KEY,
	projects   JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to create portfolio_lists: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, ownerID string) (out []domain.Project, err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendPostgres, "list", start, err) }(time.Now())

	const q = `
SELECT projects
FROM portfolio_lists
WHERE owner_id = $1;
`
	var raw []byte
	err = s.db.QueryRow(ctx, q, ownerID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	var projects []domain.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	return nonNil(projects), nil
}

func (s *PostgresStore) Replace(ctx context.Context, ownerID string, projects []domain.Project) (err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendPostgres, "replace", start, err) }(time.Now())

	if err := ownerRequired(ownerID); err != nil {
		return err
	}
	data, err := json.Marshal(nonNil(projects))
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}

	const q = `
INSERT INTO portfolio_lists (owner_id, projects, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (owner_id) DO UPDATE
SET projects = EXCLUDED.projects, updated_at = now();
`
	if _, err := s.db.Exec(ctx, q, ownerID, string(data)); err != nil {
		return fmt.Errorf("failed to upsert projects: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
