package watchlist

import "github.com/watchvaultapp/watchvault-server/internal/domain"

// ChangeType identifies what a mutation did to the watchlist.
type ChangeType string

// Change types broadcast after each mutation.
const (
	ChangeAdded   ChangeType = "entry.added"
	ChangeRemoved ChangeType = "entry.removed"
	ChangeUpdated ChangeType = "entry.updated"
	ChangeCleared ChangeType = "watchlist.cleared"
)

// Change describes one applied mutation. Entry is nil for ChangeCleared.
type Change struct {
	Type  ChangeType    `json:"type"`
	Entry *domain.Entry `json:"entry,omitempty"`
}

// EventEmitter broadcasts watchlist changes to connected clients.
// The container uses this to notify without depending on SSE details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}
