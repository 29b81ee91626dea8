package model

import "errors"

var (
	// ErrSessionNotFound is returned when a session id is not registered.
	ErrSessionNotFound = errors.New("session not found")

	// ErrRoomNotFound is returned when a room does not exist in the directory.
	ErrRoomNotFound = errors.New("room not found")

	// ErrTargetNotConnected is returned when a unicast target is not registered
	// or its transport is no longer open.
	ErrTargetNotConnected = errors.New("target session not connected")

	// ErrMessageRequired is returned when a broadcast request carries no message.
	ErrMessageRequired = errors.New("message is required")

	// ErrInviteesRequired is returned when a collaboration invite names no invitees.
	ErrInviteesRequired = errors.New("at least one invitee is required")
)
