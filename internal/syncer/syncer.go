// Package syncer keeps one authoritative local copy and one best-effort
// remote copy of the user's ProfileRecord in agreement, favoring
// availability over strict consistency. The service is the sole writer of
// the progress record to both stores; UI flows hand it partial-update
// intents and never touch storage directly.
package syncer

import (
	"context"
	"errors"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/remote"
	"github.com/salespro-app/salespro/internal/storage"
)

type Service struct {
	store  *storage.Store
	remote remote.ProfileStore
	outbox *Outbox
	logger logging.Logger
}

func New(store *storage.Store, rs remote.ProfileStore, outbox *Outbox, logger logging.Logger) *Service {
	return &Service{store: store, remote: rs, outbox: outbox, logger: logger}
}

// Load returns the locally persisted progress record, or a fresh default
// when nothing is stored yet.
func (s *Service) Load(ctx context.Context) *models.ProfileRecord {
	rec := storage.Get[*models.ProfileRecord](ctx, s.store, storage.KeyProgress, nil)
	if rec == nil {
		return models.NewProfile("")
	}
	rec.ColdData = models.MigrateColdData(rec.ColdData)
	rec.Level = models.LevelForXP(rec.XP)
	return rec
}

// Reconcile merges the local candidate with the remote record on session
// start.
//
// Outcomes:
//   - no remote configured, or no telegram id: local candidate unchanged
//   - remote has no row: the candidate is pushed (best-effort, via the
//     outbox) and returned unchanged
//   - remote unreachable: local candidate unchanged
//   - remote row found: merged per the Merge ownership table, persisted
//     locally, returned
//
// Reconcile never fails; every degraded path returns a usable record.
func (s *Service) Reconcile(ctx context.Context, local *models.ProfileRecord) *models.ProfileRecord {
	if !s.remote.Configured() || local.TelegramID == "" {
		s.logger.Info(ctx, "offline mode or no telegram id, using local storage")
		return local
	}

	remoteRec, err := s.remote.FetchByTelegramID(ctx, local.TelegramID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.logger.Info(ctx, "remote profile not found, creating", "telegram_id", local.TelegramID)
		s.push(ctx, local)
		return local
	case err != nil:
		s.logger.Warn(ctx, "remote fetch failed, using local storage", "error", err)
		return local
	}

	merged := Merge(local, remoteRec)
	s.store.Set(ctx, storage.KeyProgress, merged)
	s.logger.Info(ctx, "profile reconciled", "telegram_id", merged.TelegramID, "xp", merged.XP)
	return merged
}

// Save persists a mutated record. The local write is synchronous and always
// happens first; the remote push is queued and delivered asynchronously.
// A failed local write skips the push so the remote copy can never get ahead
// of the durable local one. Returns whether the local write succeeded (a
// remote failure never surfaces here).
func (s *Service) Save(ctx context.Context, rec *models.ProfileRecord) bool {
	rec.Level = models.LevelForXP(rec.XP)

	if !s.store.Set(ctx, storage.KeyProgress, rec) {
		s.logger.Warn(ctx, "local persist failed, skipping remote push", "telegram_id", rec.TelegramID)
		return false
	}

	if rec.TelegramID == "" || !s.remote.Configured() {
		return true
	}
	s.push(ctx, rec)
	return true
}

// Logout supersedes the in-memory record with a fresh default. The remote
// row is left untouched.
func (s *Service) Logout(ctx context.Context) *models.ProfileRecord {
	fresh := models.NewProfile("")
	s.store.Set(ctx, storage.KeyProgress, fresh)
	s.logger.Info(ctx, "logged out, local progress reset")
	return fresh
}

// push enqueues a remote upsert and wakes the drainer. Failure to even
// enqueue is logged and swallowed: the local copy is already durable.
func (s *Service) push(ctx context.Context, rec *models.ProfileRecord) {
	if err := s.outbox.Enqueue(ctx, rec); err != nil {
		s.logger.Error(ctx, "failed to queue remote push", "telegram_id", rec.TelegramID, "error", err)
		return
	}
	s.outbox.Kick()
}
