// Package protocol defines the JSON message envelope exchanged between the
// hub and its clients. Every frame in either direction is a single JSON
// object with a required "type" field and type-specific optional fields.
package protocol

import (
	"time"
)

// MessageType identifies the kind of a hub message.
type MessageType string

// Client -> Server message types. This set is closed: the router handles
// every type below and silently drops anything else.
const (
	TypeHeartbeat           MessageType = "heartbeat"
	TypeJoinRoom            MessageType = "join_room"
	TypeLeaveRoom           MessageType = "leave_room"
	TypeBroadcastMessage    MessageType = "broadcast_message"
	TypePrivateMessage      MessageType = "private_message"
	TypeCodeShare           MessageType = "code_share"
	TypeFileLockRequest     MessageType = "file_lock_request"
	TypeTaskUpdate          MessageType = "task_update"
	TypeCollaborationInvite MessageType = "collaboration_invite"
	TypeVoiceCoordination   MessageType = "voice_coordination"
)

// Server -> Client message types.
const (
	TypeWelcome                MessageType = "welcome"
	TypeSessionJoined          MessageType = "session_joined"
	TypeSessionDisconnected    MessageType = "session_disconnected"
	TypeRoomJoined             MessageType = "room_joined"
	TypeMemberJoined           MessageType = "member_joined"
	TypeMemberLeft             MessageType = "member_left"
	TypeBroadcastReceived      MessageType = "broadcast_received"
	TypePrivateMessageReceived MessageType = "private_message_received"
	TypeMessageError           MessageType = "message_error"
	TypeCodeShared             MessageType = "code_shared"
	TypeFileLockRequested      MessageType = "file_lock_requested"
	TypeTaskUpdated            MessageType = "task_updated"
	TypeHeartbeatAck           MessageType = "heartbeat_ack"
)

// InboundTypes returns the closed set of message types the hub accepts from
// clients, advertised in the welcome message.
func InboundTypes() []MessageType {
	return []MessageType{
		TypeHeartbeat,
		TypeJoinRoom,
		TypeLeaveRoom,
		TypeBroadcastMessage,
		TypePrivateMessage,
		TypeCodeShare,
		TypeFileLockRequest,
		TypeTaskUpdate,
		TypeCollaborationInvite,
		TypeVoiceCoordination,
	}
}

// SessionSummary is the wire representation of a connected session, used in
// welcome messages and by the control-plane session listing.
type SessionSummary struct {
	ID            string            `json:"id"`
	ConnectedAt   time.Time         `json:"connectedAt"`
	LastHeartbeat time.Time         `json:"lastHeartbeat"`
	Room          string            `json:"room,omitempty"`
	CurrentTask   string            `json:"currentTask,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Message is the envelope for every frame in both directions. Fields other
// than Type are populated per message type and omitted otherwise.
type Message struct {
	Type MessageType `json:"type"`

	// Identity and addressing.
	SessionID string `json:"sessionId,omitempty"`
	From      string `json:"from,omitempty"`
	Target    string `json:"target,omitempty"`
	Room      string `json:"room,omitempty"`

	// Payload fields.
	Message         string            `json:"message,omitempty"`
	Code            string            `json:"code,omitempty"`
	Language        string            `json:"language,omitempty"`
	File            string            `json:"file,omitempty"`
	Files           []string          `json:"files,omitempty"`
	Operation       string            `json:"operation,omitempty"`
	Task            string            `json:"task,omitempty"`
	Purpose         string            `json:"purpose,omitempty"`
	Invitees        []string          `json:"invitees,omitempty"`
	CollaborationID string            `json:"collaborationId,omitempty"`
	Action          string            `json:"action,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`

	// Room and registry views.
	Members     []string         `json:"members,omitempty"`
	MemberCount int              `json:"memberCount,omitempty"`
	Sessions    []SessionSummary `json:"sessions,omitempty"`

	// Welcome payload.
	SupportedTypes []MessageType `json:"supportedTypes,omitempty"`

	// Error reporting and timing.
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
