package model

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Collaboration is an invite-list grouping independent of rooms. The
// participant set starts as {initiator}; invitees are notified but never
// auto-added. No closure or expiry is defined for collaboration records.
type Collaboration struct {
	ID           string              `json:"id"`
	InitiatorID  string              `json:"initiatorId"`
	Invitees     []string            `json:"invitees"`
	Purpose      string              `json:"purpose"`
	Files        []string            `json:"files,omitempty"`
	Participants map[string]struct{} `json:"-"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// NewCollaboration creates a collaboration record with the initiator as its
// sole participant.
func NewCollaboration(id, initiatorID string, invitees []string, purpose string, files []string) *Collaboration {
	return &Collaboration{
		ID:           id,
		InitiatorID:  initiatorID,
		Invitees:     invitees,
		Purpose:      purpose,
		Files:        files,
		Participants: map[string]struct{}{initiatorID: {}},
		CreatedAt:    time.Now(),
	}
}

// ParticipantIDs returns the participant session ids in sorted order.
func (c *Collaboration) ParticipantIDs() []string {
	ids := lo.Keys(c.Participants)
	sort.Strings(ids)
	return ids
}
