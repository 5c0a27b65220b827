package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
)

// HeaderAuth trusts the X-User-Id, X-User-Name and X-User-Email headers.
// Use this ONLY for development/testing, when no Firebase credentials are set.
func HeaderAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing X-User-Id header"})
			return
		}

		auth.SetIdentity(c, auth.Identity{
			UserID:      uid,
			DisplayName: strings.TrimSpace(c.GetHeader("X-User-Name")),
			Email:       strings.TrimSpace(c.GetHeader("X-User-Email")),
		})
		c.Next()
	}
}
