package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

func sample() []domain.Project {
	return []domain.Project{
		{ID: "1", Status: domain.StatusFinished, Technologies: domain.Technologies{"React", "CSS", "HTML"}},
		{ID: "2", Status: domain.StatusInProgress, Technologies: domain.Technologies{"Go"}},
		{ID: "3", Status: domain.StatusInProgress, Technologies: domain.Technologies{"React", "CSS"}},
		{ID: "4", Technologies: domain.Technologies{"React"}},
	}
}

func ids(list []domain.Project) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func status(s domain.Status) *domain.Status { return &s }

func TestApply(t *testing.T) {
	t.Run("empty criteria is identity", func(t *testing.T) {
		assert.Equal(t, sample(), Apply(sample(), Criteria{}))
	})

	t.Run("status filter preserves order", func(t *testing.T) {
		got := Apply(sample(), Criteria{Status: status(domain.StatusInProgress)})
		assert.Equal(t, []string{"2", "3"}, ids(got))
	})

	t.Run("status-less records match finished", func(t *testing.T) {
		got := Apply(sample(), Criteria{Status: status(domain.StatusFinished)})
		assert.Equal(t, []string{"1", "4"}, ids(got))
	})

	t.Run("technologies are combined with AND", func(t *testing.T) {
		got := Apply(sample(), Criteria{Technologies: []string{"React", "CSS"}})
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("technology match is case sensitive", func(t *testing.T) {
		assert.Empty(t, Apply(sample(), Criteria{Technologies: []string{"react"}}))
	})

	t.Run("both filters", func(t *testing.T) {
		got := Apply(sample(), Criteria{
			Status:       status(domain.StatusInProgress),
			Technologies: []string{"React"},
		})
		assert.Equal(t, []string{"3"}, ids(got))
	})

	t.Run("nil input yields empty list", func(t *testing.T) {
		got := Apply(nil, Criteria{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTechnologies(t *testing.T) {
	assert.Equal(t, []string{"React", "CSS", "HTML", "Go"}, Technologies(sample()))
	assert.Empty(t, Technologies(nil))
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("En Proceso", []string{"React, CSS", "Go", "CSS"})
	require.NoError(t, err)
	require.NotNil(t, c.Status)
	assert.Equal(t, domain.StatusInProgress, *c.Status)
	assert.Equal(t, []string{"React", "CSS", "Go"}, c.Technologies)

	c, err = ParseCriteria("", nil)
	require.NoError(t, err)
	assert.Nil(t, c.Status)
	assert.Empty(t, c.Technologies)

	_, err = ParseCriteria("Archived", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
