package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "nuptio/internal/infrastructure/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens after upgrade via the authenticate event, so the
	// handshake itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades HTTP requests into live chat connections. The
// connection starts unauthenticated; clients may pass ?token= at upgrade
// time and then send an authenticate event to bind their identity.
type WebSocketHandler struct {
	manager *ws.Manager
}

func NewWebSocketHandler(manager *ws.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
	}
}

func (h *WebSocketHandler) Handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("WebSocket: upgrade failed: %v", err)
		return err
	}

	client := ws.NewClient(conn, c.QueryParam("token"))
	h.manager.Register <- client

	go client.WritePump()
	client.ReadPump(h.manager)

	return nil
}
