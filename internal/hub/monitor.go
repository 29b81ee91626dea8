package hub

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dev-collab-hub/backend/internal/model"
)

// monitor owns the scheduled heartbeat sweep. It is the sole mechanism for
// reclaiming unresponsive sessions and is torn down cleanly on shutdown.
type monitor struct {
	cron *cron.Cron
}

// Start begins the periodic heartbeat sweep. It must be called at most once;
// Stop tears the schedule down.
func (h *Hub) Start() error {
	if h.monitor != nil {
		return fmt.Errorf("heartbeat monitor already started")
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %s", h.heartbeatInterval)
	if _, err := c.AddFunc(spec, h.sweep); err != nil {
		return fmt.Errorf("failed to schedule heartbeat sweep: %w", err)
	}
	c.Start()
	h.monitor = &monitor{cron: c}

	h.log.Info().Dur("interval", h.heartbeatInterval).Dur("timeout", h.heartbeatTimeout).
		Msg("Heartbeat monitor started")
	return nil
}

// Stop cancels the heartbeat sweep and force-closes every connected session.
func (h *Hub) Stop() {
	if h.monitor != nil {
		<-h.monitor.cron.Stop().Done()
		h.monitor = nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ctx := range h.sessions {
		ctx.conn.Close()
		delete(h.sessions, id)
	}
	h.rooms = make(map[string]*model.Room)

	h.log.Info().Msg("Hub stopped")
}

// sweep scans every registered session and evicts the ones silent beyond the
// timeout. Eviction is immediate and irreversible for that session id and
// runs the normal disconnect path, so room cleanup and the disconnect
// broadcast happen exactly as for a client-initiated close.
func (h *Hub) sweep() {
	now := time.Now()

	h.mu.Lock()
	var expired []string
	for id, ctx := range h.sessions {
		if ctx.session.SilentFor(now) > h.heartbeatTimeout {
			expired = append(expired, id)
		}
	}
	h.mu.Unlock()

	for _, id := range expired {
		h.log.Warn().Str("sessionId", id).Dur("timeout", h.heartbeatTimeout).
			Msg("Evicting session after heartbeat timeout")
		h.Disconnect(id)
	}
}
