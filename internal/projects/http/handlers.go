package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/filter"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

// session resolves the caller's coordinator, writing the error response
// when there is none.
func (h *Handler) session(c *gin.Context) (*service.Coordinator, bool) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return nil, false
	}
	coord, err := h.sessions.Session(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			h.writeError(c, err)
			return nil, false
		}
		logging.From(c.Request.Context(), h.logger).Warn("session load failed",
			zap.String("owner.id", id.UserID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "could not load projects"})
		return nil, false
	}
	return coord, true
}

// withSession runs op on the caller's coordinator. When the session was
// ended underneath op (logout, or a direct list replace), op runs once more on
// a freshly loaded session. It reports whether op succeeded; on failure the
// response has been written.
func (h *Handler) withSession(c *gin.Context, op func(*service.Coordinator) error) bool {
	coord, ok := h.session(c)
	if !ok {
		return false
	}
	err := op(coord)
	if errors.Is(err, service.ErrNoSession) {
		h.sessions.Drop(auth.UserFirebaseUID(c), coord)
		if coord, ok = h.session(c); !ok {
			return false
		}
		err = op(coord)
	}
	if err != nil {
		h.writeError(c, err)
		return false
	}
	return true
}

func criteriaFromQuery(c *gin.Context) (filter.Criteria, error) {
	return filter.ParseCriteria(c.Query("status"), c.QueryArray("tech"))
}

func (h *Handler) list(c *gin.Context) {
	crit, err := criteriaFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	coord, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"projects":     coord.View(crit),
		"technologies": coord.Technologies(),
		"state":        coord.State(),
	})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.Draft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	var p domain.Project
	if !h.withSession(c, func(coord *service.Coordinator) (err error) {
		p, err = coord.Add(c.Request.Context(), req)
		return err
	}) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var req domain.Draft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	var p domain.Project
	if !h.withSession(c, func(coord *service.Coordinator) (err error) {
		p, err = coord.Edit(c.Request.Context(), c.Param("id"), req)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if !h.withSession(c, func(coord *service.Coordinator) error {
		return coord.Delete(c.Request.Context(), c.Param("id"))
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) searchRepositories(c *gin.Context) {
	var (
		repos    []github.RepositorySummary
		username string
	)
	if !h.withSession(c, func(coord *service.Coordinator) (err error) {
		repos, err = coord.Search(c.Request.Context(), c.Query("username"))
		if err == nil {
			username, _, _ = coord.LastSearch()
		}
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "username": username, "repositories": repos})
}

// importRepositories imports from the last search. When the body names a
// different username, that user is searched first.
func (h *Handler) importRepositories(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	var imported []domain.Project
	if !h.withSession(c, func(coord *service.Coordinator) error {
		if req.Username != "" {
			name, err := github.NormalizeUsername(req.Username)
			if err != nil {
				return err
			}
			if last, _, found := coord.LastSearch(); !found || last != name {
				if _, err := coord.Search(c.Request.Context(), name); err != nil {
					return err
				}
			}
		}
		var err error
		imported, err = coord.ImportSelected(c.Request.Context(), req.RepoIDs)
		return err
	}) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "imported": imported})
}
