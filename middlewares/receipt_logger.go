package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		utils.InfoLogger.Printf("Generating receipt for order ID: %s", orderID)

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			utils.InfoLogger.Printf("Receipt generated successfully for order ID: %s", orderID)
		} else {
			utils.ErrorLogger.Printf("Failed to generate receipt for order ID: %s (status %d)", orderID, c.Writer.Status())
		}
	}
}
