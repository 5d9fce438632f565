package diag

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingNewestFirst(t *testing.T) {
	r := NewRing(10)

	r.Add(Event{Message: "first"})
	r.Add(Event{Message: "second"})
	r.Add(Event{Message: "third"})

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Message)
	assert.Equal(t, "first", events[2].Message)
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(3)

	for i := 0; i < 5; i++ {
		r.Add(Event{Message: fmt.Sprintf("e%d", i)})
	}

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "e4", events[0].Message)
	assert.Equal(t, "e2", events[2].Message)
}

func TestRingEventsReturnsCopy(t *testing.T) {
	r := NewRing(10)
	r.Add(Event{Message: "original"})

	events := r.Events()
	events[0].Message = "mutated"

	assert.Equal(t, "original", r.Events()[0].Message)
}

func TestErrorsSince(t *testing.T) {
	r := NewRing(10)
	now := time.Now()

	r.Add(Event{Level: LevelError, Message: "old", Time: now.Add(-time.Minute)})
	r.Add(Event{Level: LevelInfo, Message: "recent info", Time: now})
	r.Add(Event{Level: LevelError, Message: "recent error", Time: now})

	recent := r.ErrorsSince(now.Add(-30 * time.Second))
	require.Len(t, recent, 1)
	assert.Equal(t, "recent error", recent[0].Message)
}

func TestNewRingDefaultCapacity(t *testing.T) {
	r := NewRing(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		r.Add(Event{})
	}
	assert.Len(t, r.Events(), DefaultCapacity)
}
