// Package diag holds the diagnostic log ring and the health agent that
// consumes it. The ring is a bounded in-memory event log; it is never
// persisted beyond process lifetime.
package diag

import (
	"sync"
	"time"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Event is a single diagnostic record.
type Event struct {
	ID      string
	Level   Level
	Message string
	Time    time.Time
	Data    map[string]any
}

// DefaultCapacity is the default ring size.
const DefaultCapacity = 100

// Ring is a fixed-capacity event buffer, newest first. When full, the oldest
// event is evicted. Safe for concurrent use.
type Ring struct {
	mu       sync.Mutex
	events   []Event
	capacity int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// Add prepends an event, evicting the oldest when the ring is full.
func (r *Ring) Add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append([]Event{e}, r.events...)
	if len(r.events) > r.capacity {
		r.events = r.events[:r.capacity]
	}
}

// Events returns a copy of the buffer, newest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ErrorsSince returns ERROR-level events newer than t, newest first.
func (r *Ring) ErrorsSince(t time.Time) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Level == LevelError && e.Time.After(t) {
			out = append(out, e)
		}
	}
	return out
}
