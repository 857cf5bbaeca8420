package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/utils"
)

// WebSocketAuthMiddleware autentica la conexión de eventos en vivo.
// Los clientes websocket no pueden mandar headers, el token viene por query.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}
		if utils.IsTokenBlacklisted(token) {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}
		idUsuario, err := claims.IdUsuario()
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("id_usuario", idUsuario)
		c.Set("rol", claims.Rol)

		c.Next()
	}
}
