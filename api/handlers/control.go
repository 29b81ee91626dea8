// Package handlers provides the control-plane HTTP API consumed by external
// dashboards: read queries over sessions, rooms, and history, plus a path
// for server-originated broadcasts and collaboration invites.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dev-collab-hub/backend/internal/hub"
	"github.com/dev-collab-hub/backend/internal/model"
)

// ControlHandler handles the read/administrative API.
type ControlHandler struct {
	hub *hub.Hub
}

// NewControlHandler creates a ControlHandler.
func NewControlHandler(h *hub.Hub) *ControlHandler {
	return &ControlHandler{hub: h}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sendError sends an error response with the appropriate status code.
func sendError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// BroadcastRequest is the body for POST /api/broadcast.
type BroadcastRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// InviteRequest is the body for POST /api/collaborations.
type InviteRequest struct {
	InitiatorID string   `json:"initiatorId" binding:"required"`
	Invitees    []string `json:"invitees" binding:"required"`
	Purpose     string   `json:"purpose"`
	Files       []string `json:"files"`
}

// ListSessions handles GET /api/sessions - lists all connected sessions.
func (h *ControlHandler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.Sessions())
}

// GetRoom handles GET /api/rooms/:name - fetches a room's members and metadata.
func (h *ControlHandler) GetRoom(c *gin.Context) {
	name := c.Param("name")

	room, err := h.hub.Room(name)
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			sendError(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room "+name+" not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get room: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, room)
}

// GetHistory handles GET /api/history?limit=N - fetches the last N history
// entries. Without a limit the whole buffer is returned.
func (h *ControlHandler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries := h.hub.History(limit)
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GetStats handles GET /api/stats - hub counters for dashboard display.
func (h *ControlHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.Stats())
}

// Broadcast handles POST /api/broadcast - publishes a broadcast on behalf of
// a connected session.
func (h *ControlHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	if err := h.hub.BroadcastFrom(req.SessionID, req.Message); err != nil {
		switch {
		case errors.Is(err, model.ErrSessionNotFound):
			sendError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session "+req.SessionID+" not found")
		case errors.Is(err, model.ErrMessageRequired):
			sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to broadcast: "+err.Error())
		}
		return
	}

	c.Status(http.StatusAccepted)
}

// Invite handles POST /api/collaborations - creates a collaboration invite
// on behalf of a connected session and returns the record.
func (h *ControlHandler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	collab, err := h.hub.Invite(req.InitiatorID, req.Invitees, req.Purpose, req.Files)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSessionNotFound):
			sendError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session "+req.InitiatorID+" not found")
		case errors.Is(err, model.ErrInviteesRequired):
			sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create collaboration: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, collab)
}

// RegisterRoutes registers the control-plane routes on a Gin router group.
func (h *ControlHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions", h.ListSessions)
	rg.GET("/rooms/:name", h.GetRoom)
	rg.GET("/history", h.GetHistory)
	rg.GET("/stats", h.GetStats)
	rg.POST("/broadcast", h.Broadcast)
	rg.POST("/collaborations", h.Invite)
}
