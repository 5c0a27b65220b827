// Package filter narrows a project list by status and technologies.
package filter

import (
	"strings"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

// Criteria selects projects. A nil Status and empty Technologies match everything.
type Criteria struct {
	Status       *domain.Status
	Technologies []string
}

// ParseCriteria builds criteria from query values. Each tech value may itself
// be a comma-separated list.
func ParseCriteria(status string, techs []string) (Criteria, error) {
	var c Criteria
	if strings.TrimSpace(status) != "" {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return Criteria{}, domain.ErrInvalidStatus
		}
		c.Status = &st
	}
	for _, t := range techs {
		for _, tok := range domain.SplitTechnologies(t) {
			if !contains(c.Technologies, tok) {
				c.Technologies = append(c.Technologies, tok)
			}
		}
	}
	return c, nil
}

// Match reports whether p passes both the status and technology filters.
func (c Criteria) Match(p domain.Project) bool {
	if c.Status != nil && p.EffectiveStatus() != *c.Status {
		return false
	}
	for _, t := range c.Technologies {
		if !p.Technologies.Contains(t) {
			return false
		}
	}
	return true
}

// Apply returns the projects matching c in their original order.
func Apply(projects []domain.Project, c Criteria) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Technologies returns every distinct technology across projects, in first-seen order.
func Technologies(projects []domain.Project) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, p := range projects {
		for _, t := range p.Technologies {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
