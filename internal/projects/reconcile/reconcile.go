// Package reconcile turns selected GitHub repositories into owned project records.
package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

// FallbackTechnology is used when a repository yields no technology at all.
const FallbackTechnology = "GitHub"

// genericTopics are topic tags that describe the kind of repository rather
// than a technology. Matched case-insensitively.
var genericTopics = map[string]struct{}{
	"project":     {},
	"website":     {},
	"app":         {},
	"application": {},
	"portfolio":   {},
}

var titleReplacer = strings.NewReplacer("-", " ", "_", " ")

// Reconcile builds one new record per summary, in input order. Existing
// records are only consulted to keep generated ids unique; a repository that
// was imported before is imported again as a separate record.
func Reconcile(summaries []github.RepositorySummary, ownerID string, existing []domain.Project, now time.Time) []domain.Project {
	taken := make(map[string]struct{}, len(existing)+len(summaries))
	for _, p := range existing {
		taken[p.ID] = struct{}{}
	}

	stamp := strconv.FormatInt(now.UnixMilli(), 10)
	out := make([]domain.Project, 0, len(summaries))
	for _, s := range summaries {
		id := uniqueID(stamp+"-"+strconv.FormatInt(s.ID, 10), taken)
		taken[id] = struct{}{}

		out = append(out, domain.Project{
			ID:             id,
			OwnerID:        ownerID,
			Title:          Title(s.Name),
			Description:    s.Description,
			Technologies:   Technologies(s),
			RepositoryLink: s.URL,
			Status:         domain.StatusFinished,
			CreatedAt:      now,
		})
	}
	return out
}

// Title converts a repository name into a display title.
func Title(name string) string {
	return titleReplacer.Replace(name)
}

// Technologies derives the technology set of a repository: its primary
// language followed by its non-generic topics.
func Technologies(s github.RepositorySummary) domain.Technologies {
	techs := make(domain.Technologies, 0, len(s.Topics)+1)
	add := func(t string) {
		if t == "" || techs.Contains(t) {
			return
		}
		techs = append(techs, t)
	}

	add(s.Language)
	for _, topic := range s.Topics {
		if _, generic := genericTopics[strings.ToLower(topic)]; generic {
			continue
		}
		add(topic)
	}

	if len(techs) == 0 {
		return domain.Technologies{FallbackTechnology}
	}
	return techs
}

// Select returns the summaries whose id is in ids, keeping summary order.
// An empty selection means every summary.
func Select(summaries []github.RepositorySummary, ids []int64) []github.RepositorySummary {
	if len(ids) == 0 {
		return append([]github.RepositorySummary(nil), summaries...)
	}
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]github.RepositorySummary, 0, len(ids))
	for _, s := range summaries {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

func uniqueID(base string, taken map[string]struct{}) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		id := base + "-" + strconv.Itoa(n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
