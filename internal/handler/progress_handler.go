package handler

import (
	"github.com/gin-gonic/gin"

	"accessgate/internal/logger"
	"accessgate/internal/realtime"
)

// ProgressHandler exposes the websocket progress channel.
type ProgressHandler struct {
	hub *realtime.Hub
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(hub *realtime.Hub) *ProgressHandler {
	return &ProgressHandler{hub: hub}
}

// Connect handles GET /bulk-upload/progress/ws. It blocks for the lifetime of
// the websocket connection.
func (h *ProgressHandler) Connect(c *gin.Context) {
	if err := h.hub.HandleConnection(c.Writer, c.Request); err != nil {
		logger.Warn("websocket upgrade failed", "error", err.Error())
	}
}
