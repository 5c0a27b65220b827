package http

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/filter"
)

var githubOwnerPattern = regexp.MustCompile(`(?i)github\.com/([^/]+)`)

// DisplayName derives the portfolio heading from the owner's list: the
// GitHub account of the first record, else a shortened owner id.
func DisplayName(projects []domain.Project) string {
	if len(projects) == 0 {
		return ""
	}
	first := projects[0]
	if first.RepositoryLink != "" {
		if m := githubOwnerPattern.FindStringSubmatch(first.RepositoryLink); m != nil {
			return m[1]
		}
		return "Usuario público"
	}
	if first.OwnerID != "" {
		uid := first.OwnerID
		if len(uid) > 8 {
			uid = uid[:8]
		}
		return "Usuario: " + uid
	}
	return ""
}

func (h *Handler) publicView(c *gin.Context) {
	crit, err := criteriaFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	projects, err := h.store.List(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"display_name": DisplayName(projects),
		"projects":     filter.Apply(projects, crit),
		"technologies": filter.Technologies(projects),
	})
}
