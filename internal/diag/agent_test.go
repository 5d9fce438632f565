package diag

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespro-app/salespro/internal/hostenv"
)

type fakeHost struct {
	alerts  []string
	haptics []hostenv.HapticKind
}

func (f *fakeHost) Identity() (hostenv.Identity, bool) { return hostenv.Identity{}, false }
func (f *fakeHost) Haptic(kind hostenv.HapticKind)     { f.haptics = append(f.haptics, kind) }
func (f *fakeHost) Alert(title, message string)        { f.alerts = append(f.alerts, title) }

func agentConfig(autoFix bool) AgentConfig {
	return AgentConfig{
		Enabled:  true,
		Interval: 10 * time.Second,
		Window:   30 * time.Second,
		AutoFix:  autoFix,
	}
}

func TestAgentIdleWhenHealthy(t *testing.T) {
	ring := NewRing(10)
	host := &fakeHost{}
	a := NewAgent(ring, agentConfig(true), host, nil, discardLogger())

	ring.Add(Event{Level: LevelInfo, Message: "all good", Time: time.Now()})
	a.Check(context.Background())

	status, _ := a.Status()
	assert.Equal(t, StatusIdle, status)
	assert.Empty(t, host.alerts)
	assert.Empty(t, host.haptics)
}

func TestAgentAlertsWithoutAutoFix(t *testing.T) {
	ring := NewRing(10)
	host := &fakeHost{}
	a := NewAgent(ring, agentConfig(false), host, nil, discardLogger())

	ring.Add(Event{Level: LevelError, Message: "storage write failed", Time: time.Now()})
	a.Check(context.Background())

	status, _ := a.Status()
	assert.Equal(t, StatusAlert, status)
	require.Len(t, host.alerts, 1)
}

func TestAgentRunsMatchingRemediation(t *testing.T) {
	ring := NewRing(10)
	host := &fakeHost{}

	applied := 0
	remediations := []Remediation{
		{
			Name:    "clear-heavy-caches",
			Matches: MatchSubstrings("quota", "storage"),
			Apply: func(ctx context.Context) error {
				applied++
				return nil
			},
		},
	}
	a := NewAgent(ring, agentConfig(true), host, remediations, discardLogger())

	ring.Add(Event{Level: LevelError, Message: "storage quota exceeded, attempting clean save", Time: time.Now()})
	a.Check(context.Background())

	assert.Equal(t, 1, applied)
	require.Len(t, host.haptics, 1)
	assert.Equal(t, hostenv.HapticWarning, host.haptics[0])

	status, lastAction := a.Status()
	assert.Equal(t, StatusIdle, status)
	assert.Equal(t, "clear-heavy-caches", lastAction)
}

func TestAgentNoMatchingRemediation(t *testing.T) {
	ring := NewRing(10)
	host := &fakeHost{}

	remediations := []Remediation{
		{Name: "never", Matches: MatchSubstrings("zzz"), Apply: func(ctx context.Context) error { return nil }},
	}
	a := NewAgent(ring, agentConfig(true), host, remediations, discardLogger())

	ring.Add(Event{Level: LevelError, Message: "something else broke", Time: time.Now()})
	a.Check(context.Background())

	status, lastAction := a.Status()
	assert.Equal(t, StatusIdle, status)
	assert.Empty(t, lastAction)
}

func TestAgentIgnoresErrorsOutsideWindow(t *testing.T) {
	ring := NewRing(10)
	host := &fakeHost{}
	a := NewAgent(ring, agentConfig(false), host, nil, discardLogger())

	ring.Add(Event{Level: LevelError, Message: "stale failure", Time: time.Now().Add(-time.Hour)})
	a.Check(context.Background())

	status, _ := a.Status()
	assert.Equal(t, StatusIdle, status)
	assert.Empty(t, host.alerts)
}

func TestMatchSubstrings(t *testing.T) {
	m := MatchSubstrings("Quota", "remote")

	assert.True(t, m(Event{Message: "storage quota exceeded"}))
	assert.True(t, m(Event{Message: "REMOTE fetch failed"}))
	assert.False(t, m(Event{Message: "all fine"}))
}
