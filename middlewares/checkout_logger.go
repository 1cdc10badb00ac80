package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func CheckoutLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Sebelum request
		utils.InfoLogger.Printf("Checkout requested from %s", c.ClientIP())

		c.Next()

		// Setelah request
		switch status := c.Writer.Status(); {
		case status == http.StatusCreated:
			utils.InfoLogger.Printf("Checkout succeeded for %s", c.ClientIP())
		case status >= http.StatusInternalServerError:
			utils.ErrorLogger.Printf("Checkout failed with status %d for %s", status, c.ClientIP())
		default:
			utils.InfoLogger.Printf("Checkout rejected with status %d for %s", status, c.ClientIP())
		}
	}
}
