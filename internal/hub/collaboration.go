package hub

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/dev-collab-hub/backend/internal/model"
	"github.com/dev-collab-hub/backend/internal/protocol"
)

// Invite creates a collaboration record with the initiator as its only
// participant and notifies every invitee that is currently connected.
// Offline invitees are skipped silently: there is no retry, no persistence,
// and no join protocol that would add them to the participant set later.
func (h *Hub) Invite(initiatorID string, invitees []string, purpose string, files []string) (*model.Collaboration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[initiatorID]; !ok {
		return nil, model.ErrSessionNotFound
	}
	if len(invitees) == 0 {
		return nil, model.ErrInviteesRequired
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	collab := model.NewCollaboration(id, initiatorID, invitees, purpose, files)
	h.collaborations[id] = collab

	notified := 0
	for _, inviteeID := range invitees {
		delivered := h.unicastLocked(inviteeID, &protocol.Message{
			Type:            protocol.TypeCollaborationInvite,
			CollaborationID: id,
			From:            initiatorID,
			Purpose:         purpose,
			Files:           files,
			Timestamp:       wireTime(),
		})
		if delivered {
			notified++
		} else {
			h.log.Debug().Str("collaborationId", id).Str("inviteeId", inviteeID).
				Msg("Skipping offline invitee")
		}
	}

	h.log.Info().Str("collaborationId", id).Str("initiatorId", initiatorID).
		Int("invitees", len(invitees)).Int("notified", notified).
		Msg("Collaboration created")
	return collab, nil
}
