package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dev-collab-hub/backend/internal/hub"
	"github.com/dev-collab-hub/backend/internal/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

// Session id resolution on connect: explicit query parameter, then header,
// then a freshly generated id.
const (
	sessionIDParam  = "session_id"
	sessionIDHeader = "X-Session-ID"
)

// Handler upgrades HTTP requests to WebSocket connections and wires them
// into the hub.
type Handler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler creates a WebSocket handler. With no allowed origins configured
// every origin is accepted.
func NewHandler(h *hub.Hub, allowedOrigins []string, log zerolog.Logger) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		log: log,
	}
}

// HandleConnection upgrades the request, registers the session with the hub,
// and starts the read and write pumps.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	explicitID := r.URL.Query().Get(sessionIDParam)
	if explicitID == "" {
		explicitID = r.Header.Get(sessionIDHeader)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(conn)
	sessionID := h.hub.Accept(client, explicitID)

	go h.writePump(client)
	go h.readPump(client, sessionID)

	return nil
}

// readPump pumps inbound frames from the connection to the hub's router.
// Any read error, including the peer closing, is treated as an implicit
// close and runs the hub's disconnect cascade.
func (h *Handler) readPump(client *Client, sessionID string) {
	defer func() {
		h.hub.Disconnect(sessionID)
		client.Conn().Close()
	}()

	client.Conn().SetReadLimit(maxMessageSize)
	client.Conn().SetReadDeadline(time.Now().Add(pongWait))
	client.Conn().SetPongHandler(func(string) error {
		client.Conn().SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.Conn().ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("sessionId", sessionID).Msg("WebSocket read error")
			}
			break
		}

		// Malformed payloads are logged and dropped; the connection stays open.
		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warn().Err(err).Str("sessionId", sessionID).Msg("Failed to unmarshal inbound message")
			continue
		}

		h.hub.HandleMessage(sessionID, &msg)
	}
}

// writePump pumps queued frames to the connection and keeps the transport
// alive with periodic pings.
func (h *Handler) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn().Close()
	}()

	for {
		select {
		case message, ok := <-client.SendChan():
			client.Conn().SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the client.
				client.Conn().WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Each message goes in its own frame so clients can parse
			// frames independently.
			if err := client.Conn().WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			n := len(client.SendChan())
			for i := 0; i < n; i++ {
				queued, ok := <-client.SendChan()
				if !ok {
					client.Conn().WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				client.Conn().SetWriteDeadline(time.Now().Add(writeWait))
				if err := client.Conn().WriteMessage(websocket.TextMessage, queued); err != nil {
					return
				}
			}
		case <-ticker.C:
			client.Conn().SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn().WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
