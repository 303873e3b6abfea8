package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

// SessionKey is the gin context key holding the caller's *services.Session.
const SessionKey = "session"

// SessionMiddleware resolves the bearer token, if any, into a session on
// both the gin context and the request context. Requests without a valid
// token continue anonymously.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.InfoLogger.WithError(err).Debug("Ignoring invalid bearer token")
			c.Next()
			return
		}

		attachSession(c, claims)
		c.Next()
	}
}

func attachSession(c *gin.Context, claims *utils.CustomClaims) {
	session := &services.Session{
		UserID: claims.UserID,
		Role:   claims.Role,
		Email:  claims.Email,
	}
	c.Set(SessionKey, session)
	c.Request = c.Request.WithContext(services.WithSession(c.Request.Context(), session))
}

// CurrentSession returns the session attached by SessionMiddleware.
func CurrentSession(c *gin.Context) (*services.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*services.Session)
	return session, ok && session != nil
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			abortUnauthorized(c, http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{"error": services.ErrUnauthorized.Error()})
}
