package handlers

import (
	"log"
	"net/http"

	"github.com/amin-97/sport-vibe/live"
	"github.com/amin-97/sport-vibe/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are deferred to the CORS layer in front of the API.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeTradeDesk upgrades the connection and subscribes the client to the
// trade desk room, where validation and execution events are published.
func (h *WebSocketHandler) ServeTradeDesk(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade trade desk connection: %v", err)
		return
	}

	client := live.NewClient(h.hub, conn, services.TradeDeskRoom)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
