// Package remote implements the remote profile store adapter: a thin client
// over a hosted Postgres table `profiles`, keyed by telegram_id. Hot fields
// live in typed columns; everything else is packed into a single JSON blob
// column.
//
// Failure semantics: callers never receive a transport exception. A missing
// row is the expected first-time-user outcome (common.ErrNotFound); every
// other failure is logged and reported as common.ErrRemoteUnavailable so the
// reconciliation layer can decide fallback behavior.
package remote

import (
	"context"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/models"
)

// ProfileStore is the adapter surface the reconciliation service depends on.
type ProfileStore interface {
	// Configured reports whether remote sync is possible at all. When
	// false, callers should short-circuit without issuing calls.
	Configured() bool

	// FetchByTelegramID returns the stored profile, common.ErrNotFound for
	// a first-time user, or common.ErrRemoteUnavailable.
	FetchByTelegramID(ctx context.Context, telegramID string) (*models.ProfileRecord, error)

	// Upsert writes the record keyed by telegram_id. Idempotent,
	// overwrite-wins.
	Upsert(ctx context.Context, rec *models.ProfileRecord) error

	// FetchTopByXP returns up to limit profiles ordered by xp descending,
	// ties broken by telegram_id ascending.
	FetchTopByXP(ctx context.Context, limit int) ([]*models.ProfileRecord, error)
}

// Unconfigured is the null adapter used when no DSN is present. It fails
// fast without touching the network.
type Unconfigured struct{}

func (Unconfigured) Configured() bool { return false }

func (Unconfigured) FetchByTelegramID(ctx context.Context, telegramID string) (*models.ProfileRecord, error) {
	return nil, common.ErrRemoteUnconfigured
}

func (Unconfigured) Upsert(ctx context.Context, rec *models.ProfileRecord) error {
	return common.ErrRemoteUnconfigured
}

func (Unconfigured) FetchTopByXP(ctx context.Context, limit int) ([]*models.ProfileRecord, error) {
	return nil, common.ErrRemoteUnconfigured
}
