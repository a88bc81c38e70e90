// Package events keeps an append-only log of catalog changes. Every change
// belongs to a stream (one product, one plant, or the catalog as a whole) and
// is numbered both across the whole log and within its stream.
package events

import "time"

// Event is one recorded catalog change
type Event struct {
	Position  int       `json:"position"`
	Type      string    `json:"type"`
	Stream    string    `json:"stream"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Handler reacts to appended events
type Handler interface {
	Handle(Event) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(Event) error

func (f HandlerFunc) Handle(e Event) error { return f(e) }

// Log records catalog events
type Log interface {
	// Append records a change and delivers it to matching subscribers
	Append(stream, eventType string, data any) (Event, error)
	// Since returns the events at or after position in log order
	Since(position int) ([]Event, error)
	// Stream returns the events of one stream starting at fromVersion
	Stream(stream string, fromVersion int) ([]Event, error)
	// Subscribe registers h for the given event types, or all of them when
	// none are named. The returned func removes the subscription.
	Subscribe(h Handler, eventTypes ...string) (unsubscribe func())
}
