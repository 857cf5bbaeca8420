package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/nearbiz/nearbiz-api/utils"
)

// Tipos de evento emitidos a los paneles conectados.
const (
	EventNegocioSolicitud = "negocio_solicitud"
	EventNegocioAprobado  = "negocio_aprobado"
	EventNegocioRechazado = "negocio_rechazado"
	EventCitaEstatus      = "cita_estatus"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub mantiene las conexiones de los paneles (adminNearbiz, adminNegocio)
// y difunde eventos de negocio y de citas.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> rol
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, rol string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = rol
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastNegocio difunde un cambio de estado de negocio.
func BroadcastNegocio(event string, data interface{}) {
	broadcast(Message{Event: event, Data: data})
}

// BroadcastCitaEstatus difunde una transición de estado de cita.
func BroadcastCitaEstatus(data interface{}) {
	broadcast(Message{Event: EventCitaEstatus, Data: data})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("events: marshal %s: %v", msg.Event, err)
		}
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
