// Package sse streams watchlist changes to connected clients over
// Server-Sent Events, so open views refresh without polling.
package sse

import (
	"time"

	"github.com/watchvaultapp/watchvault-server/internal/watchlist"
)

// EventType identifies an SSE event.
type EventType string

const (
	// EventEntryAdded fires when a title lands on the watchlist.
	EventEntryAdded EventType = "entry.added"
	// EventEntryRemoved fires when a title is removed.
	EventEntryRemoved EventType = "entry.removed"
	// EventEntryUpdated fires on watched/rating/notes changes.
	EventEntryUpdated EventType = "entry.updated"
	// EventCleared fires when the whole watchlist is cleared.
	EventCleared EventType = "watchlist.cleared"
	// EventHeartbeat keeps connections alive.
	EventHeartbeat EventType = "heartbeat"
)

// Event is the wire representation sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Timestamp: time.Now(),
		Type:      EventHeartbeat,
		Data:      map[string]time.Time{"server_time": time.Now()},
	}
}

// fromChange translates a container change into a wire event.
func fromChange(ch watchlist.Change) Event {
	return Event{
		Timestamp: time.Now(),
		Type:      EventType(ch.Type),
		Data:      ch.Entry,
	}
}
