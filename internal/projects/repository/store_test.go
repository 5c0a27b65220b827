package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

func sampleProjects(owner string) []domain.Project {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Project{
		{
			ID:             "p1",
			OwnerID:        owner,
			Title:          "ToDo App",
			Description:    "Task manager",
			Technologies:   domain.Technologies{"React", "CSS"},
			RepositoryLink: "https://github.com/jerga/todo-app",
			Status:         domain.StatusFinished,
			CreatedAt:      created,
		},
		{
			ID:             "p2",
			OwnerID:        owner,
			Title:          "API",
			Description:    "Backend",
			Technologies:   domain.Technologies{"Go"},
			RepositoryLink: "https://github.com/jerga/api",
			Status:         domain.StatusInProgress,
			CreatedAt:      created.Add(time.Hour),
		},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("unknown owner lists empty", func(t *testing.T) {
		got, err := s.List(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("replace then list round trips in order", func(t *testing.T) {
		want := sampleProjects("alice")
		require.NoError(t, s.Replace(ctx, "alice", want))

		got, err := s.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].ID)
			assert.Equal(t, want[i].OwnerID, got[i].OwnerID)
			assert.Equal(t, want[i].Title, got[i].Title)
			assert.Equal(t, want[i].Technologies, got[i].Technologies)
			assert.Equal(t, want[i].RepositoryLink, got[i].RepositoryLink)
			assert.Equal(t, want[i].Status, got[i].Status)
			assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		}
	})

	t.Run("replace overwrites the whole list", func(t *testing.T) {
		require.NoError(t, s.Replace(ctx, "alice", sampleProjects("alice")[1:]))
		got, err := s.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		require.NoError(t, s.Replace(ctx, "bob", sampleProjects("bob")))
		alice, err := s.List(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, alice, 1)
	})

	t.Run("empty list is stored", func(t *testing.T) {
		require.NoError(t, s.Replace(ctx, "bob", nil))
		got, err := s.List(ctx, "bob")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("owner id is required for writes", func(t *testing.T) {
		assert.Error(t, s.Replace(ctx, "", sampleProjects("x")))
	})
}
