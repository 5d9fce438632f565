// Package storage implements the durable local store: namespaced key-value
// persistence of JSON-serializable values in a sqlite file, with graceful
// degradation when the configured byte quota is exhausted.
//
// The store never returns errors to callers. A failed write reports false, a
// failed read returns the caller-supplied default; every failure path is
// logged so the diagnostic ring can pick it up.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/dbx"
	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/storage/migrations"
)

// Prefix namespaces every key so unrelated rows in a shared file are never
// touched by Clear.
const Prefix = "salesPro_"

// avatarURLSizeThreshold is the size above which an avatarUrl value is
// considered an embedded payload rather than a short URL and becomes
// strippable during quota recovery.
const avatarURLSizeThreshold = 1000

// heavyKeys are always removed during quota recovery. The embedded photo is
// the single largest growth vector and also the most disposable one.
var heavyKeys = []string{"originalPhoto", "originalPhotoBase64"}

// Store is a key-value persistence wrapper over a local sqlite database.
type Store struct {
	db     *sql.DB
	quota  int64 // total value bytes allowed; 0 means unlimited
	logger logging.Logger
}

// Open opens (creating if needed) the local database at dsn, applies the
// embedded migrations and returns a Store enforcing quotaBytes.
func Open(ctx context.Context, dsn string, quotaBytes int64, logger logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, quotaBytes, logger), nil
}

// New wraps an already-open database. Used by tests and by Open.
func New(db *sql.DB, quotaBytes int64, logger logging.Logger) *Store {
	return &Store{db: db, quota: quotaBytes, logger: logger}
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Conn exposes the underlying database so the outbox can share the same
// durable file.
func (s *Store) Conn() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Set serializes value and writes it under Prefix+key. On a quota-exceeded
// failure it attempts one recovery pass: if value is an object, known heavy
// fields are stripped and the write retried once. Returns false only if the
// retry also fails. Callers are never blocked by storage failures.
func (s *Store) Set(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error(ctx, "storage serialization failed", "key", key, "error", err)
		return false
	}

	err = s.write(ctx, key, data)
	if err == nil {
		return true
	}
	if !errors.Is(err, common.ErrQuotaExceeded) {
		s.logger.Error(ctx, "storage write failed", "key", key, "error", err)
		return false
	}

	s.logger.Warn(ctx, "storage quota exceeded, attempting clean save", "key", key)

	stripped, ok := stripHeavyFields(data)
	if !ok {
		s.logger.Error(ctx, "storage quota exceeded and value is not recoverable", "key", key)
		return false
	}
	if err := s.write(ctx, key, stripped); err != nil {
		s.logger.Error(ctx, "critical storage failure even after cleaning", "key", key, "error", err)
		return false
	}
	return true
}

// write stores data under the namespaced key, enforcing the quota against
// the total size of all other stored values plus this one. The check and the
// upsert run in one transaction.
func (s *Store) write(ctx context.Context, key string, data []byte) error {
	full := Prefix + key
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if s.quota > 0 {
			var used int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv WHERE key <> ?`, full).Scan(&used)
			if err != nil {
				return err
			}
			if used+int64(len(data)) > s.quota {
				return common.ErrQuotaExceeded
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, full, string(data))
		return err
	})
}

// stripHeavyFields removes the known heavy fields from a serialized JSON
// object. Reports false when the value is not an object or nothing was
// removed.
func stripHeavyFields(data []byte) ([]byte, bool) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	changed := false
	for _, k := range heavyKeys {
		if _, ok := m[k]; ok {
			delete(m, k)
			changed = true
		}
	}
	if v, ok := m["avatarUrl"].(string); ok && len(v) > avatarURLSizeThreshold {
		delete(m, "avatarUrl")
		changed = true
	}
	if !changed {
		return nil, false
	}
	out, err := json.Marshal(m)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Get reads and deserializes the value stored under key. A missing key,
// read failure or corrupt JSON all return def; Get never fails.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, Prefix+key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return def
	}
	if err != nil {
		s.logger.Error(ctx, "storage read failed", "key", key, "error", err)
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Error(ctx, "storage value corrupt", "key", key, "error", err)
		return def
	}
	return v
}

// Remove deletes a single namespaced key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, Prefix+key); err != nil {
		s.logger.Error(ctx, "storage remove failed", "key", key, "error", err)
	}
}

// Clear removes all namespaced keys, leaving unrelated rows untouched.
func (s *Store) Clear(ctx context.Context) {
	pattern := strings.ReplaceAll(Prefix, "_", `\_`) + "%"
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`, pattern); err != nil {
		s.logger.Error(ctx, "storage clear failed", "error", err)
		return
	}
	s.logger.Info(ctx, "storage cleared")
}
