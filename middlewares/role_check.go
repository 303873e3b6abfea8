package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/utils"
)

// RequireRole answers 401 without a session and 403 when the session's
// role differs.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			abortUnauthorized(c, http.StatusUnauthorized)
			return
		}

		if session.Role != role {
			utils.InfoLogger.Printf("Role %s denied on %s (requires %s)", session.Role, c.FullPath(), role)
			abortUnauthorized(c, http.StatusForbidden)
			return
		}

		c.Next()
	}
}
