package cli

import (
	"context"

	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/remote"
)

// Sync runs session-style reconciliation on demand.
func (a *App) Sync(ctx context.Context) error {
	a.profile = a.syncer.Reconcile(ctx, a.profile)
	_, _ = printlnFn("Synced. XP:", a.profile.XP, "Level:", a.profile.Level)
	if n := a.outbox.PendingCount(ctx); n > 0 {
		_, _ = printlnFn("Pending remote pushes:", n)
	}
	return nil
}

// Theme toggles between the light and dark theme.
func (a *App) Theme(ctx context.Context) error {
	if a.profile.Theme == models.ThemeDark {
		a.profile.Theme = models.ThemeLight
	} else {
		a.profile.Theme = models.ThemeDark
	}
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Theme set to", string(a.profile.Theme))
	return nil
}

// Top prints the leaderboard, remote-first with local fallback.
func (a *App) Top(ctx context.Context) error {
	rows := a.board.GetTop(ctx, a.config.LeaderboardLimit)
	if len(rows) == 0 {
		_, _ = printlnFn("Leaderboard is empty.")
		return nil
	}
	for i, r := range rows {
		name := r.Name
		if name == "" {
			name = r.TelegramUsername
		}
		_, _ = printlnFn(i+1, "-", name, "-", r.XP, "xp, level", r.Level)
	}
	return nil
}

// Health prints the health agent status and the most recent diagnostic
// events.
func (a *App) Health(ctx context.Context) error {
	status, lastAction := a.agent.Status()
	_, _ = printlnFn("Agent status:", string(status))
	if lastAction != "" {
		_, _ = printlnFn("Last remediation:", lastAction)
	}

	events := a.ring.Events()
	if len(events) > 10 {
		events = events[:10]
	}
	for _, e := range events {
		_, _ = printlnFn(e.Time.Format("15:04:05"), string(e.Level), e.Message)
	}
	return nil
}

// MigrateRemote applies the embedded remote schema migrations. Requires a
// configured remote connection.
func (a *App) MigrateRemote(ctx context.Context) error {
	if a.remoteDB == nil {
		_, _ = printlnFn("No remote configured.")
		return nil
	}
	if err := remote.Migrate(ctx, a.remoteDB); err != nil {
		return err
	}
	_, _ = printlnFn("Remote migrations applied.")
	return nil
}
