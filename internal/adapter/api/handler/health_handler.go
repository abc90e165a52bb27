package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nuptio/internal/infrastructure/firebase"
	ws "nuptio/internal/infrastructure/websocket"
)

type HealthHandler struct {
	authClient *firebase.FirebaseAuthClient
	wsManager  *ws.Manager
	startedAt  time.Time
}

func NewHealthHandler(authClient *firebase.FirebaseAuthClient, wsManager *ws.Manager) *HealthHandler {
	return &HealthHandler{
		authClient: authClient,
		wsManager:  wsManager,
		startedAt:  time.Now(),
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"uptime":      time.Since(h.startedAt).String(),
		"connections": h.wsManager.ClientCount(),
	})
}

// Ready checks the Firebase Auth backend so the probe fails before traffic
// hits broken credentials.
func (h *HealthHandler) Ready(c echo.Context) error {
	if err := h.authClient.TestConnection(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
