package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/dbx"
	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/remote/migrations"
)

// PostgresStore talks to the hosted profiles table via the pgx stdlib
// driver.
type PostgresStore struct {
	db     dbx.DBTX
	logger logging.Logger
}

func NewPostgresStore(db dbx.DBTX, logger logging.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// Open connects to the hosted database. The connection is verified lazily;
// a dead remote surfaces as ErrRemoteUnavailable on first use, not here.
func Open(dsn string, logger logging.Logger) (*PostgresStore, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("remote db open error: %w", err)
	}
	return NewPostgresStore(db, logger), db, nil
}

// Migrate applies the embedded profiles migration. Intended for operator use
// (the `migrate` CLI command), not for session start.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *PostgresStore) Configured() bool { return true }

func (s *PostgresStore) FetchByTelegramID(ctx context.Context, telegramID string) (*models.ProfileRecord, error) {
	query := `
		SELECT telegram_id, username, role, xp, level, data
		FROM profiles
		WHERE telegram_id = $1
	`
	rec, err := s.scanProfile(s.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "remote profile fetch failed", "telegram_id", telegramID, "error", err)
		return nil, common.ErrRemoteUnavailable
	}
	return rec, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, rec *models.ProfileRecord) error {
	blob, err := models.EncodeColdData(rec.ColdData)
	if err != nil {
		s.logger.Error(ctx, "remote profile encode failed", "telegram_id", rec.TelegramID, "error", err)
		return common.ErrRemoteUnavailable
	}

	query := `
		INSERT INTO profiles (telegram_id, username, role, xp, level, data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			role = EXCLUDED.role,
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.TelegramID, rec.Name, string(rec.Role), rec.XP, models.LevelForXP(rec.XP), blob)
	if err != nil {
		s.logger.Error(ctx, "remote profile upsert failed", "telegram_id", rec.TelegramID, "error", err)
		return common.ErrRemoteUnavailable
	}
	return nil
}

func (s *PostgresStore) FetchTopByXP(ctx context.Context, limit int) ([]*models.ProfileRecord, error) {
	query := `
		SELECT telegram_id, username, role, xp, level, data
		FROM profiles
		ORDER BY xp DESC, telegram_id ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		s.logger.Error(ctx, "remote leaderboard fetch failed", "error", err)
		return nil, common.ErrRemoteUnavailable
	}
	defer rows.Close()

	var result []*models.ProfileRecord
	for rows.Next() {
		rec, err := s.scanProfile(rows)
		if err != nil {
			s.logger.Error(ctx, "remote leaderboard scan failed", "error", err)
			return nil, common.ErrRemoteUnavailable
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error(ctx, "remote leaderboard iteration failed", "error", err)
		return nil, common.ErrRemoteUnavailable
	}
	return result, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile reads one profiles row. Hot columns override whatever the
// blob claims, and level is re-derived from xp so the invariant holds even
// against a hand-edited row.
func (s *PostgresStore) scanProfile(row rowScanner) (*models.ProfileRecord, error) {
	var (
		rec  models.ProfileRecord
		role string
		blob []byte
	)
	if err := row.Scan(&rec.TelegramID, &rec.Name, &role, &rec.XP, &rec.Level, &blob); err != nil {
		return nil, err
	}

	cold, err := models.DecodeColdData(blob)
	if err != nil {
		return nil, err
	}
	rec.ColdData = cold
	rec.Role = models.UserRole(role)
	rec.Level = models.LevelForXP(rec.XP)
	rec.IsAuthenticated = true
	return &rec, nil
}
