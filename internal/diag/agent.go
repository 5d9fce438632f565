package diag

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/salespro-app/salespro/internal/hostenv"
	"github.com/salespro-app/salespro/internal/logging"
)

type Status string

const (
	StatusIdle      Status = "IDLE"
	StatusAnalyzing Status = "ANALYZING"
	StatusRepairing Status = "REPAIRING"
	StatusAlert     Status = "ALERT"
)

// Remediation is a named self-healing action the agent may run when
// auto-fix is enabled and a recent error matches.
type Remediation struct {
	Name    string
	Matches func(e Event) bool
	Apply   func(ctx context.Context) error
}

// MatchSubstrings builds a matcher that reports true when the event message
// contains any of the given substrings, case-insensitively.
func MatchSubstrings(subs ...string) func(e Event) bool {
	return func(e Event) bool {
		msg := strings.ToLower(e.Message)
		for _, s := range subs {
			if strings.Contains(msg, strings.ToLower(s)) {
				return true
			}
		}
		return false
	}
}

type AgentConfig struct {
	Enabled  bool
	Interval time.Duration // how often the ring is polled
	Window   time.Duration // trailing window for "recent" errors
	AutoFix  bool          // run remediations instead of alerting
}

// Agent polls the ring on a fixed interval, looks for ERROR events within
// the trailing window, and either runs a matching remediation (auto-fix) or
// surfaces an alert through the host environment. Best-effort only: no retry
// limit, no escalation, no incident history across restarts.
type Agent struct {
	ring         *Ring
	cfg          AgentConfig
	host         hostenv.Host
	remediations []Remediation
	logger       logging.Logger

	mu         sync.Mutex
	status     Status
	lastAction string
}

func NewAgent(ring *Ring, cfg AgentConfig, host hostenv.Host, remediations []Remediation, logger logging.Logger) *Agent {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.Window <= 0 {
		cfg.Window = 30 * time.Second
	}
	return &Agent{
		ring:         ring,
		cfg:          cfg,
		host:         host,
		remediations: remediations,
		logger:       logger,
		status:       StatusIdle,
	}
}

// Run polls until ctx is done. Does nothing when the agent is disabled.
func (a *Agent) Run(ctx context.Context) {
	if !a.cfg.Enabled {
		return
	}

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check performs a single health-check pass. Exported so tests and callers
// can trigger a pass without waiting for the ticker.
func (a *Agent) Check(ctx context.Context) {
	recent := a.ring.ErrorsSince(time.Now().Add(-a.cfg.Window))
	if len(recent) == 0 {
		a.setStatus(StatusIdle, "")
		return
	}

	a.setStatus(StatusAnalyzing, "")

	if !a.cfg.AutoFix {
		a.setStatus(StatusAlert, "")
		a.host.Alert("System alert", "Recent failures detected, intervention required")
		return
	}

	a.setStatus(StatusRepairing, "")
	action := a.remediate(ctx, recent)
	a.host.Haptic(hostenv.HapticWarning)
	a.setStatus(StatusIdle, action)
}

// remediate runs the first remediation matching any recent error. Returns
// the action name, or empty when nothing matched.
func (a *Agent) remediate(ctx context.Context, recent []Event) string {
	for _, r := range a.remediations {
		for _, e := range recent {
			if r.Matches == nil || !r.Matches(e) {
				continue
			}
			a.logger.Info(ctx, "health agent running remediation", "name", r.Name, "trigger", e.Message)
			if err := r.Apply(ctx); err != nil {
				a.logger.Warn(ctx, "remediation failed", "name", r.Name, "error", err)
			}
			return r.Name
		}
	}
	return ""
}

func (a *Agent) setStatus(s Status, action string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = s
	if action != "" {
		a.lastAction = action
	}
}

// Status returns the current agent state and the last remediation applied.
func (a *Agent) Status() (Status, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status, a.lastAction
}
