package events

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var errEmptyEvent = errors.New("events: stream and event type are required")

type subscription struct {
	handler Handler
	types   map[string]bool
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || s.types[eventType]
}

// MemoryLog is a Log held in process memory. Handlers run synchronously on
// the appending goroutine, after the log lock is released.
type MemoryLog struct {
	mu      sync.RWMutex
	events  []Event
	streams map[string][]int
	subs    map[int]subscription
	nextSub int
	now     func() time.Time
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		streams: make(map[string][]int),
		subs:    make(map[int]subscription),
		now:     time.Now,
	}
}

var _ Log = (*MemoryLog)(nil)

func (l *MemoryLog) Append(stream, eventType string, data any) (Event, error) {
	if stream == "" || eventType == "" {
		return Event{}, errEmptyEvent
	}

	l.mu.Lock()
	e := Event{
		Position:  len(l.events),
		Type:      eventType,
		Stream:    stream,
		Version:   len(l.streams[stream]) + 1,
		Timestamp: l.now().UTC(),
		Data:      data,
	}
	l.events = append(l.events, e)
	l.streams[stream] = append(l.streams[stream], e.Position)

	var handlers []Handler
	for _, sub := range l.subs {
		if sub.wants(eventType) {
			handlers = append(handlers, sub.handler)
		}
	}
	l.mu.Unlock()

	for _, h := range handlers {
		if err := h.Handle(e); err != nil {
			log.Warn().Err(err).Str("event", e.Type).Str("stream", e.Stream).Msg("event handler failed")
		}
	}
	return e, nil
}

func (l *MemoryLog) Since(position int) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if position < 0 {
		position = 0
	}
	if position >= len(l.events) {
		return []Event{}, nil
	}
	out := make([]Event, len(l.events)-position)
	copy(out, l.events[position:])
	return out, nil
}

func (l *MemoryLog) Stream(stream string, fromVersion int) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if fromVersion < 1 {
		fromVersion = 1
	}
	positions := l.streams[stream]
	if fromVersion > len(positions) {
		return []Event{}, nil
	}
	out := make([]Event, 0, len(positions)-fromVersion+1)
	for _, p := range positions[fromVersion-1:] {
		out = append(out, l.events[p])
	}
	return out, nil
}

func (l *MemoryLog) Subscribe(h Handler, eventTypes ...string) func() {
	sub := subscription{handler: h}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = true
		}
	}

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = sub
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}
