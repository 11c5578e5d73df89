package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// InternalTokenHeader carries the shared internal-service secret.
	InternalTokenHeader = "X-Internal-Service-Token"

	// LegacyInternalTokenHeader is the alias still sent by older callers.
	LegacyInternalTokenHeader = "X-Service-Token"
)

// InternalAuth guards service-to-service endpoints with the shared
// internal-service token: absent token responds 401, mismatched 403. End
// clients never hold this secret.
func InternalAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(InternalTokenHeader)
		if provided == "" {
			provided = c.GetHeader(LegacyInternalTokenHeader)
		}

		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Internal service token not provided",
				},
			})
			return
		}

		if provided != token {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Internal service token is not valid",
				},
			})
			return
		}

		c.Next()
	}
}
