package syncer

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/remote"
)

// Outbox is a durable queue of pending remote pushes, kept in the same
// sqlite file as the local store so an unpushed mutation survives a
// restart. One row per telegram id: a newer Save coalesces over an
// undelivered older one (last-write-wins, matching the remote upsert).
type Outbox struct {
	db            *sql.DB
	remote        remote.ProfileStore
	logger        logging.Logger
	maxAttempts   int
	baseDelay     time.Duration
	flushInterval time.Duration
	kick          chan struct{}
}

func NewOutbox(db *sql.DB, rs remote.ProfileStore, logger logging.Logger, maxAttempts int, baseDelay, flushInterval time.Duration) *Outbox {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if flushInterval <= 0 {
		flushInterval = 30 * time.Second
	}
	return &Outbox{
		db:            db,
		remote:        rs,
		logger:        logger,
		maxAttempts:   maxAttempts,
		baseDelay:     baseDelay,
		flushInterval: flushInterval,
		kick:          make(chan struct{}, 1),
	}
}

// Enqueue stores the record as the pending push for its telegram id,
// replacing any undelivered older payload.
func (o *Outbox) Enqueue(ctx context.Context, rec *models.ProfileRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = o.db.ExecContext(ctx, `
		INSERT INTO outbox (telegram_id, payload, attempts, created_at)
		VALUES (?, ?, 0, CURRENT_TIMESTAMP)
		ON CONFLICT(telegram_id) DO UPDATE SET
			payload = excluded.payload,
			attempts = 0,
			created_at = CURRENT_TIMESTAMP
	`, rec.TelegramID, string(payload))
	return err
}

// Kick wakes the drainer without waiting for the flush interval.
// Non-blocking; a pending kick is enough.
func (o *Outbox) Kick() {
	select {
	case o.kick <- struct{}{}:
	default:
	}
}

// Run drains pending pushes until ctx is done, waking on Kick or on the
// flush interval.
func (o *Outbox) Run(ctx context.Context) {
	ticker := time.NewTicker(o.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.kick:
			o.DrainOnce(ctx)
		case <-ticker.C:
			o.DrainOnce(ctx)
		}
	}
}

type pendingPush struct {
	telegramID string
	payload    string
	attempts   int
}

// inPassRetries is the number of quick backoff retries a single pass makes
// per row, to ride out transient blips. The durable retry budget is the
// attempts column: maxAttempts failed passes, then the row is dropped.
const inPassRetries = 2

// DrainOnce attempts to deliver every pending push. Each row gets at most
// inPassRetries+1 upsert tries with exponential backoff inside the pass; a
// row that still fails has its attempt count bumped and is dropped for good
// once maxAttempts passes have failed.
func (o *Outbox) DrainOnce(ctx context.Context) {
	pending, err := o.listPending(ctx)
	if err != nil {
		o.logger.Error(ctx, "outbox read failed", "error", err)
		return
	}

	for _, p := range pending {
		var rec models.ProfileRecord
		if err := json.Unmarshal([]byte(p.payload), &rec); err != nil {
			o.logger.Error(ctx, "outbox payload corrupt, dropping", "telegram_id", p.telegramID, "error", err)
			o.delete(ctx, p.telegramID)
			continue
		}

		backoff := retry.WithMaxRetries(inPassRetries, retry.NewExponential(o.baseDelay))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := o.remote.Upsert(ctx, &rec); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err == nil {
			o.delete(ctx, p.telegramID)
			o.logger.Info(ctx, "pending push delivered", "telegram_id", p.telegramID)
			continue
		}

		if p.attempts+1 >= o.maxAttempts {
			o.logger.Error(ctx, "pending push dropped after repeated failures",
				"telegram_id", p.telegramID, "attempts", p.attempts+1, "error", err)
			o.delete(ctx, p.telegramID)
			continue
		}
		o.logger.Warn(ctx, "pending push still failing, will retry",
			"telegram_id", p.telegramID, "attempts", p.attempts+1, "error", err)
		if _, uerr := o.db.ExecContext(ctx,
			`UPDATE outbox SET attempts = attempts + 1 WHERE telegram_id = ?`, p.telegramID); uerr != nil {
			o.logger.Error(ctx, "outbox attempt bump failed", "telegram_id", p.telegramID, "error", uerr)
		}
	}
}

// PendingCount reports how many pushes are waiting. Used by the CLI status
// view and tests.
func (o *Outbox) PendingCount(ctx context.Context) int {
	var n int
	if err := o.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&n); err != nil {
		o.logger.Error(ctx, "outbox count failed", "error", err)
		return 0
	}
	return n
}

func (o *Outbox) listPending(ctx context.Context) ([]pendingPush, error) {
	rows, err := o.db.QueryContext(ctx,
		`SELECT telegram_id, payload, attempts FROM outbox ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pendingPush
	for rows.Next() {
		var p pendingPush
		if err := rows.Scan(&p.telegramID, &p.payload, &p.attempts); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (o *Outbox) delete(ctx context.Context, telegramID string) {
	if _, err := o.db.ExecContext(ctx,
		`DELETE FROM outbox WHERE telegram_id = ?`, telegramID); err != nil {
		o.logger.Error(ctx, "outbox delete failed", "telegram_id", telegramID, "error", err)
	}
}
