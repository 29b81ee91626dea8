// Package hub implements the real-time coordination hub: the connection
// registry, room directory, message router, heartbeat monitor, and
// collaboration coordinator. All registry, room, collaboration, and history
// state is process-wide and in-memory, guarded by one coarse lock; nothing
// survives a restart.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dev-collab-hub/backend/internal/history"
	"github.com/dev-collab-hub/backend/internal/model"
	"github.com/dev-collab-hub/backend/internal/protocol"
)

// Conn is the transport side of a connected session. Send must queue the
// frame without blocking; delivery is best-effort and never awaited.
type Conn interface {
	Send(data []byte)
	Close()
	IsClosed() bool
}

// sessionContext pairs a session record with its transport.
type sessionContext struct {
	session *model.Session
	conn    Conn
}

// Options configures a Hub. Zero values fall back to the defaults below.
type Options struct {
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration
	HistoryCapacity   int
}

const (
	// DefaultHeartbeatInterval is the period of the liveness sweep.
	DefaultHeartbeatInterval = 30 * time.Second

	// DefaultHeartbeatTimeout is how long a session may stay silent before
	// the monitor evicts it.
	DefaultHeartbeatTimeout = 60 * time.Second
)

// Hub owns every live session, room, and collaboration. One mutex guards all
// of them; handlers only mutate in-memory state and queue outbound frames,
// so no I/O happens under the lock.
type Hub struct {
	log zerolog.Logger

	heartbeatInterval time.Duration
	heartbeatTimeout  time.Duration

	mu             sync.Mutex
	sessions       map[string]*sessionContext
	rooms          map[string]*model.Room
	collaborations map[string]*model.Collaboration
	history        *history.Buffer

	monitor *monitor
}

// New creates a Hub. The heartbeat monitor is not started until Start is
// called.
func New(opts Options, log zerolog.Logger) *Hub {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if opts.HeartbeatTimeout <= 0 {
		opts.HeartbeatTimeout = DefaultHeartbeatTimeout
	}

	return &Hub{
		log:               log,
		heartbeatInterval: opts.HeartbeatInterval,
		heartbeatTimeout:  opts.HeartbeatTimeout,
		sessions:          make(map[string]*sessionContext),
		rooms:             make(map[string]*model.Room),
		collaborations:    make(map[string]*model.Collaboration),
		history:           history.NewBuffer(opts.HistoryCapacity),
	}
}

// Accept registers a new session for the given transport and returns its id.
// The explicit id is used if supplied and not already registered; otherwise a
// fresh one is generated. The new session receives a welcome message with the
// prior session list, and everyone else is told about the arrival.
func (h *Hub) Accept(conn Conn, explicitID string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := explicitID
	if id == "" {
		id = uuid.New().String()
	} else if _, taken := h.sessions[id]; taken {
		// Ids are never reused while registered; the newcomer gets a fresh one.
		id = uuid.New().String()
	}

	now := time.Now()
	h.sessions[id] = &sessionContext{
		session: &model.Session{
			ID:            id,
			ConnectedAt:   now,
			LastHeartbeat: now,
		},
		conn: conn,
	}

	h.unicastLocked(id, &protocol.Message{
		Type:           protocol.TypeWelcome,
		SessionID:      id,
		Sessions:       h.summariesLocked(id),
		SupportedTypes: protocol.InboundTypes(),
		Timestamp:      wireTime(),
	})
	h.broadcastLocked(&protocol.Message{
		Type:      protocol.TypeSessionJoined,
		SessionID: id,
		Timestamp: wireTime(),
	}, id)

	h.log.Info().Str("sessionId", id).Int("sessions", len(h.sessions)).Msg("Session connected")
	return id
}

// Heartbeat records a liveness signal from the session and acknowledges it
// to the sender only. Unknown ids are ignored.
func (h *Hub) Heartbeat(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[id]
	if !ok {
		return
	}

	ctx.session.LastHeartbeat = time.Now()
	h.unicastLocked(id, &protocol.Message{
		Type:      protocol.TypeHeartbeatAck,
		Timestamp: wireTime(),
	})
}

// Disconnect removes the session from the registry, running the room-leave
// cascade first, and tells every remaining session about the departure.
// Client-initiated closes, transport errors, and heartbeat evictions all go
// through here; calling it twice for the same id is a no-op.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[id]
	if !ok {
		return
	}

	h.leaveRoomLocked(ctx)
	delete(h.sessions, id)
	ctx.conn.Close()

	h.broadcastLocked(&protocol.Message{
		Type:      protocol.TypeSessionDisconnected,
		SessionID: id,
		Timestamp: wireTime(),
	}, "")

	h.log.Info().Str("sessionId", id).Int("sessions", len(h.sessions)).Msg("Session disconnected")
}

// unicastLocked queues a message to one session. It reports whether the
// target was registered with an open transport. Callers must hold h.mu.
func (h *Hub) unicastLocked(id string, msg *protocol.Message) bool {
	ctx, ok := h.sessions[id]
	if !ok || ctx.conn.IsClosed() {
		return false
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("type", string(msg.Type)).Msg("Failed to marshal outbound message")
		return false
	}

	ctx.conn.Send(data)
	return true
}

// broadcastLocked queues a message to every open session except excludeID
// and returns the delivered count. Callers must hold h.mu.
func (h *Hub) broadcastLocked(msg *protocol.Message, excludeID string) int {
	delivered := 0
	for id := range h.sessions {
		if id == excludeID {
			continue
		}
		if h.unicastLocked(id, msg) {
			delivered++
		}
	}
	return delivered
}

// roomBroadcastLocked queues a message to every open member of the room
// except excludeID and returns the delivered count. A missing room delivers
// to nobody. Callers must hold h.mu.
func (h *Hub) roomBroadcastLocked(roomName string, msg *protocol.Message, excludeID string) int {
	room, ok := h.rooms[roomName]
	if !ok {
		return 0
	}

	delivered := 0
	for id := range room.Members {
		if id == excludeID {
			continue
		}
		if h.unicastLocked(id, msg) {
			delivered++
		}
	}
	return delivered
}

// summariesLocked builds wire summaries of every session except excludeID.
// Callers must hold h.mu.
func (h *Hub) summariesLocked(excludeID string) []protocol.SessionSummary {
	summaries := make([]protocol.SessionSummary, 0, len(h.sessions))
	for id, ctx := range h.sessions {
		if id == excludeID {
			continue
		}
		summaries = append(summaries, summarize(ctx.session))
	}
	return summaries
}

func summarize(s *model.Session) protocol.SessionSummary {
	return protocol.SessionSummary{
		ID:            s.ID,
		ConnectedAt:   s.ConnectedAt,
		LastHeartbeat: s.LastHeartbeat,
		Room:          s.Room,
		CurrentTask:   s.CurrentTask,
		Metadata:      s.Metadata,
	}
}

// wireTime formats the current time for message timestamps.
func wireTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}
