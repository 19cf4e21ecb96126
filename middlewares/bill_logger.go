package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/smartcafe/ordering-app/utils"
)

func BillLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating bill for order ID: %s", c.Param("order_id"))

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Bill generated successfully for order ID: %s", c.Param("order_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to generate bill for order ID: %s", c.Param("order_id"))
		}
	}
}
