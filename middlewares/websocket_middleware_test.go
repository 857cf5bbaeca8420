package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nearbiz/nearbiz-api/utils"
)

func setupWSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ws := r.Group("/ws")
	ws.Use(WebSocketAuthMiddleware())
	ws.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestWebSocketAuthRechazaTokenRevocado(t *testing.T) {
	utils.InitJWT("clave-ws-test", "NearBiz", "NearBizApp", time.Hour)
	r := setupWSRouter()

	token, expira, err := utils.GenerateToken(7, "adminNegocio")
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/ws?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// El logout revoca el token también para el canal de eventos.
	utils.BlacklistToken(token, expira)

	req, _ = http.NewRequest("GET", "/ws?token="+token, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebSocketAuthSinToken(t *testing.T) {
	utils.InitJWT("clave-ws-test", "NearBiz", "NearBizApp", time.Hour)
	r := setupWSRouter()

	req, _ := http.NewRequest("GET", "/ws", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, _ = http.NewRequest("GET", "/ws?token=basura", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
