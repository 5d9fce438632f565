package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/salespro-app/salespro/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupDB(t *testing.T) *sql.DB {
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
	return db
}

func TestSetGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 0, testLogger())

	type payload struct {
		Name string `json:"name"`
		XP   int64  `json:"xp"`
	}

	ok := s.Set(ctx, "progress", payload{Name: "Ann", XP: 500})
	require.True(t, ok)

	got := Get(ctx, s, "progress", payload{})
	assert.Equal(t, payload{Name: "Ann", XP: 500}, got)
}

func TestGetMissingKeyReturnsDefault(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 0, testLogger())

	assert.Equal(t, "fallback", Get(ctx, s, "nothing", "fallback"))
	assert.Equal(t, 42, Get(ctx, s, "nothing", 42))
}

func TestGetCorruptValueReturnsDefault(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, 0, testLogger())

	_, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, Prefix+"progress", "{broken")
	require.NoError(t, err)

	type payload struct{ Name string }
	assert.Equal(t, payload{Name: "def"}, Get(ctx, s, "progress", payload{Name: "def"}))
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 0, testLogger())

	require.True(t, s.Set(ctx, "k", "first"))
	require.True(t, s.Set(ctx, "k", "second"))

	assert.Equal(t, "second", Get(ctx, s, "k", ""))
}

func TestQuotaRecoveryStripsHeavyFields(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 2048, testLogger())

	value := map[string]any{
		"name":                "Ann",
		"xp":                  500,
		"originalPhotoBase64": strings.Repeat("A", 4096),
	}

	// The raw value exceeds the quota, but stripping the embedded photo
	// brings it under. The write must succeed and user progress survive.
	ok := s.Set(ctx, "progress", value)
	require.True(t, ok)

	got := Get(ctx, s, "progress", map[string]any{})
	assert.Equal(t, "Ann", got["name"])
	assert.NotContains(t, got, "originalPhotoBase64")
}

func TestQuotaRecoveryStripsOversizedAvatarURL(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 2048, testLogger())

	value := map[string]any{
		"name":      "Ann",
		"avatarUrl": "data:image/png;base64," + strings.Repeat("B", 4096),
	}

	require.True(t, s.Set(ctx, "progress", value))

	got := Get(ctx, s, "progress", map[string]any{})
	assert.NotContains(t, got, "avatarUrl")
}

func TestQuotaRecoveryKeepsShortAvatarURL(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 256, testLogger())

	// A short https URL is not strippable; with nothing else to remove the
	// write fails.
	value := map[string]any{
		"avatarUrl": "https://example.com/a.png",
		"filler":    strings.Repeat("C", 512),
	}

	assert.False(t, s.Set(ctx, "progress", value))
}

func TestQuotaFailureOnNonObjectValue(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 64, testLogger())

	assert.False(t, s.Set(ctx, "blob", strings.Repeat("D", 1024)))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t), 0, testLogger())

	require.True(t, s.Set(ctx, "k", "v"))
	s.Remove(ctx, "k")

	assert.Equal(t, "def", Get(ctx, s, "k", "def"))

	// Removing an absent key is a no-op.
	s.Remove(ctx, "k")
}

func TestClearOnlyTouchesNamespacedKeys(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, 0, testLogger())

	require.True(t, s.Set(ctx, "progress", "mine"))
	_, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, "otherApp_data", `"theirs"`)
	require.NoError(t, err)

	s.Clear(ctx)

	assert.Equal(t, "", Get(ctx, s, "progress", ""))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&count))
	assert.Equal(t, 1, count)
}
