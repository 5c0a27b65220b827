package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
)

// Login starts the caller's project session, loading the stored list.
func (h *Handler) Login(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	coord, err := h.sessions.Session(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "could not load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": id, "projects": len(coord.Records())})
}

// Logout ends the caller's session. The in-memory list is dropped; the
// stored list is untouched.
func (h *Handler) Logout(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	ended := h.sessions.End(uid)
	c.JSON(http.StatusOK, gin.H{"ok": true, "ended": ended})
}

// GetProfile returns the identity the request was authenticated as.
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": id})
}
