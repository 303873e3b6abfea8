package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/utils"
)

// WebSocketAuthMiddleware reads the session token from the "token" query
// parameter, since browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			abortUnauthorized(c, http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			abortUnauthorized(c, http.StatusUnauthorized)
			return
		}

		attachSession(c, claims)
		c.Next()
	}
}
