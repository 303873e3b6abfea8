package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
)

// apiContentPolicy forbids every subresource: responses are JSON, PDF
// receipts or uploaded images, none of which load anything.
const apiContentPolicy = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets the response headers shared by every route. Uploaded
// images may be embedded by the storefront from another origin; everything
// else stays same-site.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", apiContentPolicy)

		if strings.HasPrefix(c.Request.URL.Path, services.UploadURLPrefix) {
			c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		} else {
			c.Header("Cross-Origin-Resource-Policy", "same-site")
		}

		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
