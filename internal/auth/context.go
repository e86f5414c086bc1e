package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by the auth middleware.
const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxRole        = "role"
)

// UserFirebaseUID extracts the Firebase UID from the gin context. Set by
// FirebaseAuthMiddleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserRole extracts the local role from the gin context. Set by WithUser.
func UserRole(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxRole))
}
