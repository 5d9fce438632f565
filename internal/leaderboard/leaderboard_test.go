package leaderboard

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/storage"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	require.NoError(t, err)
	return storage.New(db, 0, testLogger())
}

type fakeRemote struct {
	rows []*models.ProfileRecord
	err  error
}

func (f *fakeRemote) Configured() bool { return true }

func (f *fakeRemote) FetchByTelegramID(ctx context.Context, telegramID string) (*models.ProfileRecord, error) {
	return nil, common.ErrNotFound
}

func (f *fakeRemote) Upsert(ctx context.Context, rec *models.ProfileRecord) error { return nil }

func (f *fakeRemote) FetchTopByXP(ctx context.Context, limit int) ([]*models.ProfileRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func user(id string, xp int64) *models.ProfileRecord {
	rec := models.NewProfile("user-" + id)
	rec.TelegramID = id
	rec.XP = xp
	rec.Level = models.LevelForXP(xp)
	return rec
}

func TestSortOrdersByXPThenTelegramID(t *testing.T) {
	recs := []*models.ProfileRecord{
		user("c", 10),
		user("b", 500),
		user("a", 500),
		user("d", 0),
	}

	Sort(recs)

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.TelegramID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestGetTopRefreshesCache(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	remote := &fakeRemote{rows: []*models.ProfileRecord{user("a", 900), user("b", 100)}}

	p := New(remote, store, testLogger())

	rows := p.GetTop(ctx, 10)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].TelegramID)

	cached := storage.Get(ctx, store, storage.KeyAllUsers, []*models.ProfileRecord{})
	assert.Len(t, cached, 2)
}

func TestGetTopFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	// Seed the cache unsorted, then break the remote.
	require.True(t, store.Set(ctx, storage.KeyAllUsers, []*models.ProfileRecord{
		user("c", 10), user("a", 500), user("b", 500),
	}))

	p := New(&fakeRemote{err: common.ErrRemoteUnavailable}, store, testLogger())

	rows := p.GetTop(ctx, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].TelegramID)
	assert.Equal(t, "b", rows[1].TelegramID)
}

func TestGetTopNoCacheNoRemote(t *testing.T) {
	ctx := context.Background()
	p := New(&fakeRemote{err: common.ErrRemoteUnavailable}, setupStore(t), testLogger())

	assert.Empty(t, p.GetTop(ctx, 10))
}
