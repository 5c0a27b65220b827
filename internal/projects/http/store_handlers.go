package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

// getList returns the owner's stored list as a bare JSON array.
func (h *Handler) getList(c *gin.Context) {
	projects, err := h.store.List(c.Request.Context(), c.Param("uid"))
	if err != nil {
		logging.From(c.Request.Context(), h.logger).Error("store read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not read projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// replaceList overwrites the owner's list. Only the owner may write it.
func (h *Handler) replaceList(c *gin.Context) {
	uid := c.Param("uid")
	if auth.UserFirebaseUID(c) != uid {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "cannot write another user's projects"})
		return
	}

	var req replaceReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Projects == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}

	if err := h.store.Replace(c.Request.Context(), uid, *req.Projects); err != nil {
		logging.From(c.Request.Context(), h.logger).Error("store write failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "could not save projects"})
		return
	}
	h.sessions.Invalidate(uid)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
