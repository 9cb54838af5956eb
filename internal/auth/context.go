package auth

import (
	"strings"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// UserFirebaseUID returns the observer uid set by FirebaseAuthMiddleware or
// OptionalUser. Observation logs are owned by this value.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// setObserver records the caller on the gin context and tags the request
// logger with user_id, so log service entries can be traced to an owner.
func setObserver(c *gin.Context, uid, email string) {
	c.Set(CtxFirebaseUID, uid)
	if email != "" {
		c.Set(CtxEmail, email)
	}

	ctx := c.Request.Context()
	l := logging.FromContext(ctx).With(zap.String("user_id", uid))
	c.Request = c.Request.WithContext(logging.WithLogger(ctx, l))
}
