package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/utils"
)

// AuthMiddleware resuelve la identidad (id_usuario, rol) desde el
// Authorization header. Es la única fuente de identidad de todas las
// rutas protegidas; siempre verifica firma, expiración, issuer y
// audience.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			c.Abort()
			return
		}
		tokenString := parts[1]

		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			c.Abort()
			return
		}

		idUsuario, err := claims.IdUsuario()
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			c.Abort()
			return
		}

		c.Set("id_usuario", idUsuario)
		c.Set("rol", claims.Rol)
		c.Set("token", tokenString)

		c.Next()
	}
}

// IdentidadDe recupera la identidad que dejó AuthMiddleware en el contexto.
func IdentidadDe(c *gin.Context) (idUsuario uint, rol string, ok bool) {
	idRaw, exists := c.Get("id_usuario")
	if !exists {
		return 0, "", false
	}
	id, okID := idRaw.(uint)
	rolRaw, _ := c.Get("rol")
	r, okRol := rolRaw.(string)
	if !okID || !okRol {
		return 0, "", false
	}
	return id, r, true
}
