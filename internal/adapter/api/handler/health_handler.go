package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nexusmarket/internal/infrastructure/websocket"
)

type HealthHandler struct {
	storageBackend string
	wsManager      *websocket.Manager
}

func NewHealthHandler(storageBackend string, wsManager *websocket.Manager) *HealthHandler {
	return &HealthHandler{
		storageBackend: storageBackend,
		wsManager:      wsManager,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status":  "Server is running",
		"time":    time.Now().Format(time.RFC3339),
		"storage": h.storageBackend,
	}
	if h.wsManager != nil {
		body["websocket_sessions"] = h.wsManager.SessionCount()
	}
	return c.JSON(http.StatusOK, body)
}
