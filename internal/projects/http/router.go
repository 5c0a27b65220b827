package http

import "github.com/gin-gonic/gin"

// Register attaches the session-backed routes to a group that already
// requires authentication (mounted at /api/v1/me).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.list)
	rg.POST("/projects", h.create)
	rg.PUT("/projects/:id", h.update)
	rg.DELETE("/projects/:id", h.delete)

	rg.GET("/github/repos", h.searchRepositories)
	rg.POST("/github/import", h.importRepositories)
}

// RegisterStore attaches the whole-list store routes. Reads are public;
// writes go through requireAuth.
func (h *Handler) RegisterStore(r gin.IRouter, requireAuth gin.HandlerFunc) {
	r.GET("/projects/:uid", h.getList)
	r.POST("/projects/:uid", requireAuth, h.replaceList)
}

// RegisterPublic attaches the read-only portfolio view.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/public/:uid/projects", h.publicView)
}
