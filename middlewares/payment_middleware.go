package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/utils"
)

// PaymentSecurityHeaders keeps client secrets out of every cache.
func PaymentSecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// PaymentRateLimiter allows ten payment intent requests per second per IP.
func PaymentRateLimiter() gin.HandlerFunc {
	return NewIPRateLimiter(time.Second/10, 10).RateLimit()
}

// LogPaymentRequest logs payment request details
func LogPaymentRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		utils.InfoLogger.WithField("request_id", GetRequestID(c)).Printf(
			"Payment Request - Method: %s, Path: %s, Status: %d, Duration: %v",
			method, path, c.Writer.Status(), time.Since(start),
		)
	}
}
