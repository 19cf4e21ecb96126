package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/smartcafe/ordering-app/utils"
)

// WebSocketAuthMiddleware -> browser tidak bisa mengirim header Authorization
// saat handshake websocket, jadi token dibaca dari query param.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || utils.IsTokenBlacklisted(token) {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
