package model

import (
	"time"
)

// Session represents one live connection to the hub. A session exists from
// the moment its connection is accepted until it closes, errors out, or is
// evicted by the heartbeat monitor.
type Session struct {
	ID            string            `json:"id"`
	ConnectedAt   time.Time         `json:"connectedAt"`
	LastHeartbeat time.Time         `json:"lastHeartbeat"`
	Room          string            `json:"room,omitempty"`
	CurrentTask   string            `json:"currentTask,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// InRoom reports whether the session currently belongs to a room.
func (s *Session) InRoom() bool {
	return s.Room != ""
}

// SilentFor returns how long the session has gone without a heartbeat,
// measured from the given reference time.
func (s *Session) SilentFor(now time.Time) time.Duration {
	return now.Sub(s.LastHeartbeat)
}

// Duration returns how long the session has been connected.
func (s *Session) Duration() time.Duration {
	return time.Since(s.ConnectedAt)
}
