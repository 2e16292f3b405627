package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/guestbook-hq/guestbook-backend/errors"
)

const (
	// ModeratorKey is the gin context key holding the moderator capability.
	ModeratorKey = "is_moderator"

	// moderatorHeader is set by the deployment edge (reverse proxy or admin
	// gateway) for requests from trusted operators. The application trusts
	// the boolean; it runs no authentication of its own.
	moderatorHeader = "X-Guestbook-Moderator"
)

// ModeratorCapability records in the request context whether the caller may
// moderate. It never rejects; handlers that serve everyone read the flag to
// shape their response.
func ModeratorCapability() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ModeratorKey, c.GetHeader(moderatorHeader) == "1")
		c.Next()
	}
}

// IsModerator reports the capability recorded by ModeratorCapability.
func IsModerator(c *gin.Context) bool {
	return c.GetBool(ModeratorKey)
}

// RequireModerator aborts the request unless the caller may moderate.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsModerator(c) {
			_ = c.Error(apperrors.Forbidden("Moderator access required", "this operation is restricted to moderators"))
			c.Abort()
			return
		}
		c.Next()
	}
}
