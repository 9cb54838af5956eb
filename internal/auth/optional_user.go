package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// DemoUser owns logs created without an X-User-Id header.
	DemoUser = "demo-user"

	userHeader = "X-User-Id"
	// maxUIDLen matches the Firebase uid limit, so development logs can be
	// reassigned to real accounts later.
	maxUIDLen = 128
)

// OptionalUser is the development stand-in for FirebaseAuthMiddleware. The
// caller names itself with X-User-Id.
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(userHeader))
		switch {
		case uid == "":
			uid = DemoUser
		case len(uid) > maxUIDLen:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-User-Id too long"})
			return
		}

		setObserver(c, uid, "")
		c.Next()
	}
}
