package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nearbiz/nearbiz-api/events"
	"github.com/nearbiz/nearbiz-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler es el endpoint websocket de eventos en vivo para los
// paneles de administración.
func EventsHandler(c *gin.Context) {
	rolRaw, exists := c.Get("rol")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	rol := rolRaw.(string)

	if rol != models.RolAdminNearbiz && rol != models.RolAdminNegocio && rol != models.RolPersonal {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.RegisterClient(ws, rol)

	// Drena mensajes entrantes hasta que el cliente se desconecte.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}
