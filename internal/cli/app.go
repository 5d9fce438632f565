// Package cli wires the SalesPro services together and drives them from a
// small REPL. Command handlers own their errors; the loop stays resilient.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/salespro-app/salespro/internal/ai"
	"github.com/salespro-app/salespro/internal/auth"
	"github.com/salespro-app/salespro/internal/avatars"
	"github.com/salespro-app/salespro/internal/config"
	"github.com/salespro-app/salespro/internal/diag"
	"github.com/salespro-app/salespro/internal/hostenv"
	"github.com/salespro-app/salespro/internal/leaderboard"
	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/models"
	"github.com/salespro-app/salespro/internal/remote"
	"github.com/salespro-app/salespro/internal/storage"
	"github.com/salespro-app/salespro/internal/syncer"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	ring     *diag.Ring
	store    *storage.Store
	remote   remote.ProfileStore
	remoteDB *sql.DB // nil when running offline
	outbox   *syncer.Outbox
	syncer   *syncer.Service
	board    *leaderboard.Projector
	auth     *auth.Service
	host     hostenv.Host
	agent    *diag.Agent
	oracle   ai.Oracle
	avatars  *avatars.Store // nil when no bucket is configured

	profile *models.ProfileRecord
	reader  *bufio.Reader
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	ring := diag.NewRing(diag.DefaultCapacity)
	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := diag.NewRecorder(ring, logging.NewSlogLogger(slogger))

	store, err := storage.Open(ctx, cfg.LocalDBPath, cfg.QuotaBytes, logger)
	if err != nil {
		return nil, err
	}

	// Remote is best-effort from the very start: a bad DSN degrades to
	// offline mode instead of refusing to launch.
	var rs remote.ProfileStore = remote.Unconfigured{}
	var remoteDB *sql.DB
	if cfg.RemoteDSN != "" {
		pg, db, err := remote.Open(cfg.RemoteDSN, logger)
		if err != nil {
			logger.Warn(ctx, "remote open failed, running offline", "error", err)
		} else {
			rs = pg
			remoteDB = db
		}
	}

	var host hostenv.Host
	if cfg.InitData != "" {
		host = hostenv.NewTelegramHost(cfg.InitData, cfg.BotToken, cfg.InitDataTTL, logger)
	} else {
		host = hostenv.NewConsoleHost(os.Stdout)
	}

	outbox := syncer.NewOutbox(store.Conn(), rs, logger,
		cfg.OutboxMaxAttempts, cfg.OutboxBaseDelay, cfg.OutboxFlushInterval)
	sync := syncer.New(store, rs, outbox, logger)
	board := leaderboard.New(rs, store, logger)
	authService := auth.New(store, logger)

	remediations := []diag.Remediation{
		{
			Name:    "clear-heavy-caches",
			Matches: diag.MatchSubstrings("quota", "storage"),
			Apply: func(ctx context.Context) error {
				store.Remove(ctx, storage.KeyMaterials)
				store.Remove(ctx, storage.KeyStreams)
				return nil
			},
		},
		{
			Name:    "flush-pending-pushes",
			Matches: diag.MatchSubstrings("remote", "network", "unavailable"),
			Apply: func(ctx context.Context) error {
				outbox.Kick()
				return nil
			},
		},
	}
	var avatarStore *avatars.Store
	if cfg.S3Bucket != "" {
		avatarStore, err = avatars.New(ctx, avatars.Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
		})
		if err != nil {
			logger.Warn(ctx, "object storage unavailable, avatars disabled", "error", err)
			avatarStore = nil
		}
	}

	agent := diag.NewAgent(ring, diag.AgentConfig{
		Enabled:  cfg.AgentEnabled,
		Interval: cfg.AgentInterval,
		Window:   cfg.AgentWindow,
		AutoFix:  cfg.AgentAutoFix,
	}, host, remediations, logger)

	return &App{
		config:   cfg,
		logger:   logger,
		ring:     ring,
		store:    store,
		remote:   rs,
		remoteDB: remoteDB,
		outbox:   outbox,
		syncer:   sync,
		board:    board,
		auth:     authService,
		host:     host,
		agent:    agent,
		oracle:   ai.Unavailable{},
		avatars:  avatarStore,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the background workers, performs session-start reconciliation
// and enters the REPL.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.outbox.Run(ctx)
	go a.agent.Run(ctx)

	a.profile = a.syncer.Load(ctx)
	a.seedIdentity()
	a.profile = a.syncer.Reconcile(ctx, a.profile)

	a.Root(ctx)
	_ = a.store.Close()
	if a.remoteDB != nil {
		_ = a.remoteDB.Close()
	}
}

// seedIdentity copies the host-provided identity into the candidate record
// before reconciliation. Existing local identity is never overwritten.
func (a *App) seedIdentity() {
	id, ok := a.host.Identity()
	if !ok {
		return
	}
	if a.profile.TelegramID == "" {
		a.profile.TelegramID = id.ID
	}
	if a.profile.TelegramUsername == "" {
		a.profile.TelegramUsername = id.Username
	}
	if a.profile.Name == "" {
		a.profile.Name = id.DisplayName
	}
	a.profile.IsAuthenticated = true
}

func (a *App) isLoggedIn() bool {
	return a.profile != nil && a.profile.IsAuthenticated
}
