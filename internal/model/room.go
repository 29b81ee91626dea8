package model

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Room is a named, ephemeral group of sessions used for scoped broadcast.
// A room exists only while it has at least one member; the directory deletes
// it the moment its last member leaves.
type Room struct {
	Name      string              `json:"name"`
	Members   map[string]struct{} `json:"-"`
	CreatedAt time.Time           `json:"createdAt"`
	Metadata  map[string]string   `json:"metadata,omitempty"`
}

// NewRoom creates an empty room record. The caller is expected to add the
// first member immediately; empty rooms never live in the directory.
func NewRoom(name string, metadata map[string]string) *Room {
	return &Room{
		Name:      name,
		Members:   make(map[string]struct{}),
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}
}

// Add inserts a session id into the member set.
func (r *Room) Add(sessionID string) {
	r.Members[sessionID] = struct{}{}
}

// Remove deletes a session id from the member set and reports whether the
// room is now empty.
func (r *Room) Remove(sessionID string) bool {
	delete(r.Members, sessionID)
	return len(r.Members) == 0
}

// Has reports whether the session id is a member of the room.
func (r *Room) Has(sessionID string) bool {
	_, ok := r.Members[sessionID]
	return ok
}

// MemberIDs returns the member session ids in sorted order.
func (r *Room) MemberIDs() []string {
	ids := lo.Keys(r.Members)
	sort.Strings(ids)
	return ids
}

// MemberCount returns the number of members in the room.
func (r *Room) MemberCount() int {
	return len(r.Members)
}
