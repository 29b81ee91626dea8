package model

import "time"

// HistoryEntry is one broadcast message retained for late queries by the
// control-plane surface.
type HistoryEntry struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
