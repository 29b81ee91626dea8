// Package history provides the bounded FIFO buffer of recent broadcast
// messages exposed through the control-plane surface.
package history

import (
	"sync"

	"github.com/dev-collab-hub/backend/internal/model"
)

// DefaultCapacity is the number of entries retained when no capacity is
// configured.
const DefaultCapacity = 100

// Buffer is a thread-safe fixed-capacity FIFO store of history entries.
// When the buffer is full, appending evicts the oldest entry. Entries are
// never removed otherwise; process restart loses the buffer entirely.
type Buffer struct {
	mu       sync.RWMutex
	entries  []model.HistoryEntry
	capacity int
}

// NewBuffer creates a Buffer with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		entries:  make([]model.HistoryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Append adds an entry, evicting the oldest one if the buffer is full.
func (b *Buffer) Append(entry model.HistoryEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.capacity {
		copy(b.entries, b.entries[1:])
		b.entries[len(b.entries)-1] = entry
		return
	}
	b.entries = append(b.entries, entry)
}

// Last returns a copy of the most recent n entries in chronological order.
// If n is non-positive or exceeds the stored count, all entries are returned.
func (b *Buffer) Last(n int) []model.HistoryEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	if n == 0 {
		return nil
	}

	out := make([]model.HistoryEntry, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Len returns the current number of entries in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Clear removes all entries from the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = b.entries[:0]
}
