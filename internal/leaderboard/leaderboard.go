// Package leaderboard projects a ranked view of users by experience points.
// The remote store is authoritative; when it is unreachable the projector
// falls back to the locally cached user list, which is best-effort and not
// rank-equivalent to the remote view.
package leaderboard

import (
	"context"
	"sort"

	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/remote"
	"github.com/salespro-app/salespro/internal/storage"
)

type Projector struct {
	remote remote.ProfileStore
	store  *storage.Store
	logger logging.Logger
}

func New(rs remote.ProfileStore, store *storage.Store, logger logging.Logger) *Projector {
	return &Projector{remote: rs, store: store, logger: logger}
}

// GetTop returns up to limit records ordered by xp descending, ties broken
// by telegram id ascending. A successful remote read refreshes the local
// cache; any remote failure degrades to the cached list sorted the same
// way.
func (p *Projector) GetTop(ctx context.Context, limit int) []*models.ProfileRecord {
	rows, err := p.remote.FetchTopByXP(ctx, limit)
	if err == nil {
		p.store.Set(ctx, storage.KeyAllUsers, rows)
		return rows
	}

	p.logger.Warn(ctx, "leaderboard falling back to local cache", "error", err)

	cached := storage.Get(ctx, p.store, storage.KeyAllUsers, []*models.ProfileRecord{})
	Sort(cached)
	if len(cached) > limit {
		cached = cached[:limit]
	}
	return cached
}

// Sort orders records by xp descending, then telegram id ascending. The
// tie-break keeps repeated calls on unchanged input stable.
func Sort(recs []*models.ProfileRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].XP != recs[j].XP {
			return recs[i].XP > recs[j].XP
		}
		return recs[i].TelegramID < recs[j].TelegramID
	})
}
