package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts the chat socket endpoint. No auth middleware:
// the connection authenticates itself with an authenticate event.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.Handle)
}
