package hub

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/dev-collab-hub/backend/internal/model"
	"github.com/dev-collab-hub/backend/internal/protocol"
)

// RoomView is the read-only snapshot of a room returned to the control plane.
type RoomView struct {
	Name        string            `json:"name"`
	Members     []string          `json:"members"`
	MemberCount int               `json:"memberCount"`
	CreatedAt   time.Time         `json:"createdAt"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Stats summarizes the hub state for dashboard status display.
type Stats struct {
	Sessions       int `json:"sessions"`
	Rooms          int `json:"rooms"`
	Collaborations int `json:"collaborations"`
	HistorySize    int `json:"historySize"`
}

// Sessions returns summaries of every connected session, ordered by id.
func (h *Hub) Sessions() []protocol.SessionSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	summaries := lo.Map(lo.Values(h.sessions), func(ctx *sessionContext, _ int) protocol.SessionSummary {
		return summarize(ctx.session)
	})
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

// Room returns a snapshot of the named room, or ErrRoomNotFound if it does
// not exist. Rooms exist only while non-empty, so a snapshot always has at
// least one member.
func (h *Hub) Room(name string) (*RoomView, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[name]
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	return &RoomView{
		Name:        room.Name,
		Members:     room.MemberIDs(),
		MemberCount: room.MemberCount(),
		CreatedAt:   room.CreatedAt,
		Metadata:    room.Metadata,
	}, nil
}

// History returns the last n broadcast entries in chronological order.
func (h *Hub) History(n int) []model.HistoryEntry {
	return h.history.Last(n)
}

// Stats returns current counts for the dashboard.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Stats{
		Sessions:       len(h.sessions),
		Rooms:          len(h.rooms),
		Collaborations: len(h.collaborations),
		HistorySize:    h.history.Len(),
	}
}
