package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dev-collab-hub/backend/internal/ws"
)

// WebSocketHandler exposes the hub's connection endpoint.
type WebSocketHandler struct {
	wsHandler *ws.Handler
	log       zerolog.Logger
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(wsHandler *ws.Handler, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{wsHandler: wsHandler, log: log}
}

// Connect handles GET /api/connect - upgrades to a WebSocket session.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	if err := h.wsHandler.HandleConnection(c.Writer, c.Request); err != nil {
		// The upgrader has already replied to the client.
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
	}
}

// RegisterRoutes registers the WebSocket route on a Gin router group.
func (h *WebSocketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/connect", h.Connect)
}
