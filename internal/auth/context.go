package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxDisplayName = "display_name"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by the auth middleware
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// SetIdentity stores id on the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxFirebaseUID, id.UserID)
	if id.Email != "" {
		c.Set(CtxEmail, id.Email)
	}
	if id.DisplayName != "" {
		c.Set(CtxDisplayName, id.DisplayName)
	}
}

// CurrentIdentity returns the identity set by the auth middleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	uid := UserFirebaseUID(c)
	if uid == "" {
		return Identity{}, false
	}
	return Identity{
		UserID:      uid,
		Email:       c.GetString(CtxEmail),
		DisplayName: c.GetString(CtxDisplayName),
	}, true
}
