package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// setupTestPostgres connects to TEST_DB_DSN and skips when it is not set.
func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL store test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			`DELETE FROM portfolio_lists WHERE owner_id IN ('alice', 'bob')`)
		pool.Close()
	})
	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := setupTestPostgres(t)
	s := NewPostgresStore(pool)
	require.NoError(t, s.EnsureSchema(context.Background()))
	_, err := pool.Exec(context.Background(), `DELETE FROM portfolio_lists WHERE owner_id IN ('alice', 'bob')`)
	require.NoError(t, err)

	exerciseStore(t, s)
}
