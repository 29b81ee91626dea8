package hub

import (
	"github.com/dev-collab-hub/backend/internal/model"
	"github.com/dev-collab-hub/backend/internal/protocol"
)

// JoinRoom moves the session into the named room, creating the room if it
// does not exist yet. A session already in a room leaves it first. Room
// names are opaque, case-sensitive strings; any session may join any room.
func (h *Hub) JoinRoom(id, roomName string, metadata map[string]string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[id]
	if !ok {
		return model.ErrSessionNotFound
	}

	if ctx.session.InRoom() {
		h.leaveRoomLocked(ctx)
	}

	room, ok := h.rooms[roomName]
	if !ok {
		room = model.NewRoom(roomName, metadata)
		h.rooms[roomName] = room
	}

	room.Add(id)
	ctx.session.Room = roomName
	if metadata != nil {
		ctx.session.Metadata = metadata
	}

	// Existing members learn about the newcomer; the newcomer gets the
	// room snapshot instead.
	h.roomBroadcastLocked(roomName, &protocol.Message{
		Type:        protocol.TypeMemberJoined,
		Room:        roomName,
		SessionID:   id,
		MemberCount: room.MemberCount(),
		Timestamp:   wireTime(),
	}, id)

	members := make([]string, 0, room.MemberCount()-1)
	for _, memberID := range room.MemberIDs() {
		if memberID != id {
			members = append(members, memberID)
		}
	}
	h.unicastLocked(id, &protocol.Message{
		Type:      protocol.TypeRoomJoined,
		Room:      roomName,
		Members:   members,
		Metadata:  room.Metadata,
		Timestamp: wireTime(),
	})

	h.log.Info().Str("sessionId", id).Str("room", roomName).
		Int("members", room.MemberCount()).Msg("Session joined room")
	return nil
}

// LeaveRoom removes the session from its current room, if any. Calling it
// for a session that is not in a room is a no-op.
func (h *Hub) LeaveRoom(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, ok := h.sessions[id]
	if !ok {
		return
	}
	h.leaveRoomLocked(ctx)
}

// leaveRoomLocked runs the room-leave protocol: remove the session from the
// member set, notify the remaining members, and delete the room if it is now
// empty. Callers must hold h.mu.
func (h *Hub) leaveRoomLocked(ctx *sessionContext) {
	if !ctx.session.InRoom() {
		return
	}

	roomName := ctx.session.Room
	ctx.session.Room = ""

	room, ok := h.rooms[roomName]
	if !ok {
		return
	}

	empty := room.Remove(ctx.session.ID)
	h.roomBroadcastLocked(roomName, &protocol.Message{
		Type:        protocol.TypeMemberLeft,
		Room:        roomName,
		SessionID:   ctx.session.ID,
		MemberCount: room.MemberCount(),
		Timestamp:   wireTime(),
	}, "")

	if empty {
		delete(h.rooms, roomName)
		h.log.Debug().Str("room", roomName).Msg("Deleted empty room")
	}

	h.log.Info().Str("sessionId", ctx.session.ID).Str("room", roomName).
		Int("members", room.MemberCount()).Msg("Session left room")
}
