package hub

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/dev-collab-hub/backend/internal/model"
	"github.com/dev-collab-hub/backend/internal/protocol"
)

// errTargetNotConnected is the wire-visible reason sent back to a sender
// whose private message could not be delivered.
const errTargetNotConnected = "Target session not connected"

// HandleMessage dispatches one inbound message from a connected session.
// The inbound type set is closed: every declared type is handled below and
// anything else is logged and dropped without a reply. Messages missing
// required fields are treated as malformed and dropped the same way. No
// inbound message can crash the router or affect other sessions.
func (h *Hub) HandleMessage(senderID string, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeHeartbeat:
		h.Heartbeat(senderID)

	case protocol.TypeJoinRoom:
		if msg.Room == "" {
			h.dropMalformed(senderID, msg, "missing room")
			return
		}
		if err := h.JoinRoom(senderID, msg.Room, msg.Metadata); err != nil {
			h.log.Warn().Err(err).Str("sessionId", senderID).Msg("Join room failed")
		}

	case protocol.TypeLeaveRoom:
		h.LeaveRoom(senderID)

	case protocol.TypeBroadcastMessage:
		if msg.Message == "" {
			h.dropMalformed(senderID, msg, "missing message")
			return
		}
		if err := h.BroadcastFrom(senderID, msg.Message); err != nil {
			h.log.Warn().Err(err).Str("sessionId", senderID).Msg("Broadcast failed")
		}

	case protocol.TypePrivateMessage:
		if msg.Target == "" {
			h.dropMalformed(senderID, msg, "missing target")
			return
		}
		h.privateMessage(senderID, msg.Target, msg.Message)

	case protocol.TypeCodeShare:
		if msg.Code == "" {
			h.dropMalformed(senderID, msg, "missing code")
			return
		}
		h.shareCode(senderID, msg)

	case protocol.TypeFileLockRequest:
		if msg.File == "" {
			h.dropMalformed(senderID, msg, "missing file")
			return
		}
		h.RequestLock(senderID, msg.File, msg.Operation)

	case protocol.TypeTaskUpdate:
		h.updateTask(senderID, msg.Task)

	case protocol.TypeCollaborationInvite:
		if _, err := h.Invite(senderID, msg.Invitees, msg.Purpose, msg.Files); err != nil {
			h.log.Warn().Err(err).Str("sessionId", senderID).Msg("Collaboration invite failed")
		}

	case protocol.TypeVoiceCoordination:
		// Voice transport is not implemented; the hub only relays the
		// coordination signal.
		h.relayVoice(senderID, msg)

	default:
		h.log.Warn().Str("sessionId", senderID).Str("type", string(msg.Type)).
			Msg("Dropping message with unknown type")
	}
}

func (h *Hub) dropMalformed(senderID string, msg *protocol.Message, reason string) {
	h.log.Warn().Str("sessionId", senderID).Str("type", string(msg.Type)).
		Str("reason", reason).Msg("Dropping malformed message")
}

// BroadcastFrom delivers a chat message from the sender to every other open
// session and appends it to the history buffer. The sender must be
// registered; the control plane uses this to publish on behalf of a session.
func (h *Hub) BroadcastFrom(senderID, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[senderID]; !ok {
		return model.ErrSessionNotFound
	}
	if message == "" {
		return model.ErrMessageRequired
	}

	entryID, err := gonanoid.New()
	if err != nil {
		return err
	}
	h.history.Append(model.HistoryEntry{
		ID:        entryID,
		SenderID:  senderID,
		Message:   message,
		Timestamp: time.Now(),
	})

	h.broadcastLocked(&protocol.Message{
		Type:      protocol.TypeBroadcastReceived,
		From:      senderID,
		Message:   message,
		Timestamp: wireTime(),
	}, senderID)
	return nil
}

// privateMessage delivers a direct message to one target. If the target is
// not registered or its transport is closed, the sender alone gets a single
// message_error reply; delivery is never retried.
func (h *Hub) privateMessage(senderID, targetID, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := h.unicastLocked(targetID, &protocol.Message{
		Type:      protocol.TypePrivateMessageReceived,
		From:      senderID,
		Message:   message,
		Timestamp: wireTime(),
	})
	if !delivered {
		h.unicastLocked(senderID, &protocol.Message{
			Type:  protocol.TypeMessageError,
			Error: errTargetNotConnected,
		})
	}
}

// shareCode relays a code snippet to the sender's room, or to every session
// when the sender is not in a room. The sender never receives its own share.
func (h *Hub) shareCode(senderID string, msg *protocol.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[senderID]
	if !ok {
		return
	}

	out := &protocol.Message{
		Type:      protocol.TypeCodeShared,
		From:      senderID,
		Code:      msg.Code,
		Language:  msg.Language,
		File:      msg.File,
		Timestamp: wireTime(),
	}
	if ctx.session.InRoom() {
		h.roomBroadcastLocked(ctx.session.Room, out, senderID)
	} else {
		h.broadcastLocked(out, senderID)
	}
}

// RequestLock relays a file-lock intent to every other session. The hub is
// advisory only: it records nothing and grants nothing; enforcement belongs
// to an external store.
func (h *Hub) RequestLock(senderID, file, operation string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[senderID]; !ok {
		return
	}

	h.broadcastLocked(&protocol.Message{
		Type:      protocol.TypeFileLockRequested,
		SessionID: senderID,
		File:      file,
		Operation: operation,
		Timestamp: wireTime(),
	}, senderID)

	h.log.Info().Str("sessionId", senderID).Str("file", file).
		Str("operation", operation).Msg("File lock requested")
}

// updateTask records the sender's current task and announces the change to
// every other session.
func (h *Hub) updateTask(senderID, task string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[senderID]
	if !ok {
		return
	}

	ctx.session.CurrentTask = task
	h.broadcastLocked(&protocol.Message{
		Type:      protocol.TypeTaskUpdated,
		SessionID: senderID,
		Task:      task,
		Timestamp: wireTime(),
	}, senderID)
}

// relayVoice forwards a voice-coordination signal to the sender's room, or
// globally when the sender is not in a room.
func (h *Hub) relayVoice(senderID string, msg *protocol.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[senderID]
	if !ok {
		return
	}

	out := &protocol.Message{
		Type:      protocol.TypeVoiceCoordination,
		From:      senderID,
		Action:    msg.Action,
		Room:      ctx.session.Room,
		Message:   msg.Message,
		Timestamp: wireTime(),
	}
	if ctx.session.InRoom() {
		h.roomBroadcastLocked(ctx.session.Room, out, senderID)
	} else {
		h.broadcastLocked(out, senderID)
	}
}
