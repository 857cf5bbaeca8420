package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nearbiz/nearbiz-api/utils"
)

// RequireRoles deja pasar solo a los roles indicados. Autenticado pero
// sin el rol correcto es 403, no 401.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolRaw, exists := c.Get("rol")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("No token"))
			c.Abort()
			return
		}

		rol, _ := rolRaw.(string)
		for _, r := range roles {
			if rol == r {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("Rol no autorizado"))
		c.Abort()
	}
}
