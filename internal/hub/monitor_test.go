package hub

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-collab-hub/backend/internal/protocol"
)

func TestSweepEvictsSilentSessions(t *testing.T) {
	h := New(Options{HeartbeatTimeout: 60 * time.Second}, zerolog.Nop())

	connX, connY := &fakeConn{}, &fakeConn{}
	idX := h.Accept(connX, "")
	idY := h.Accept(connY, "")
	require.NoError(t, h.JoinRoom(idX, "alpha", nil))
	connY.reset()

	// X has been silent for 70s; Y heartbeats on schedule.
	h.mu.Lock()
	h.sessions[idX].session.LastHeartbeat = time.Now().Add(-70 * time.Second)
	h.mu.Unlock()

	h.sweep()

	assert.True(t, connX.IsClosed(), "eviction force-closes the transport")
	gone := connY.byType(t, protocol.TypeSessionDisconnected)
	require.Len(t, gone, 1)
	assert.Equal(t, idX, gone[0].SessionID)

	_, err := h.Room("alpha")
	assert.Error(t, err, "eviction runs the room-leave cascade")

	sessions := h.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, idY, sessions[0].ID)
}

func TestSweepSparesLiveSessions(t *testing.T) {
	h := New(Options{HeartbeatTimeout: 60 * time.Second}, zerolog.Nop())

	connX := &fakeConn{}
	h.Accept(connX, "")

	h.sweep()

	assert.False(t, connX.IsClosed())
	assert.Equal(t, 1, h.Stats().Sessions)
}

func TestStartAndStopMonitor(t *testing.T) {
	h := New(Options{HeartbeatInterval: time.Second}, zerolog.Nop())

	require.NoError(t, h.Start())
	assert.Error(t, h.Start(), "starting twice is rejected")

	h.Stop()
}
