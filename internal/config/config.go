// Package config handles configuration for the SalesPro client, layering
// defaults, an optional JSON file, environment variables (including a local
// .env) and command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the SalesPro client.
type Config struct {
	// Local durable store.
	LocalDBPath string `env:"SALESPRO_DB_PATH"`
	QuotaBytes  int64  `env:"SALESPRO_QUOTA_BYTES"`

	// Remote profile store (hosted Postgres). Empty means offline-only.
	RemoteDSN string `env:"SALESPRO_REMOTE_DSN"`

	// Telegram host integration.
	BotToken    string        `env:"TELEGRAM_BOT_TOKEN"`
	InitData    string        `env:"TELEGRAM_INIT_DATA"`
	InitDataTTL time.Duration `env:"TELEGRAM_INIT_DATA_TTL"`

	// Health agent.
	AgentEnabled  bool          `env:"SALESPRO_AGENT_ENABLED"`
	AgentAutoFix  bool          `env:"SALESPRO_AGENT_AUTOFIX"`
	AgentInterval time.Duration `env:"SALESPRO_AGENT_INTERVAL"`
	AgentWindow   time.Duration `env:"SALESPRO_AGENT_WINDOW"`

	// Outbox drainer.
	OutboxMaxAttempts   int           `env:"SALESPRO_OUTBOX_MAX_ATTEMPTS"`
	OutboxBaseDelay     time.Duration `env:"SALESPRO_OUTBOX_BASE_DELAY"`
	OutboxFlushInterval time.Duration `env:"SALESPRO_OUTBOX_FLUSH_INTERVAL"`

	LeaderboardLimit int `env:"SALESPRO_LEADERBOARD_LIMIT"`

	// Avatar object storage (S3-compatible). Empty bucket disables it.
	S3Bucket       string `env:"SALESPRO_S3_BUCKET"`
	S3Region       string `env:"SALESPRO_S3_REGION"`
	S3BaseEndpoint string `env:"SALESPRO_S3_ENDPOINT"`
	S3RootUser     string `env:"SALESPRO_S3_USER"`
	S3RootPassword string `env:"SALESPRO_S3_PASSWORD"`
}

// LoadDefaults populates c with sensible defaults. The quota default mirrors
// the ~5 MB ceiling of browser local storage the product was designed
// around.
func (c *Config) LoadDefaults() {
	c.LocalDBPath = "salespro.db"
	c.QuotaBytes = 5 * 1024 * 1024
	c.RemoteDSN = ""
	c.InitDataTTL = 24 * time.Hour
	c.AgentEnabled = true
	c.AgentAutoFix = false
	c.AgentInterval = 10 * time.Second
	c.AgentWindow = 30 * time.Second
	c.OutboxMaxAttempts = 5
	c.OutboxBaseDelay = 500 * time.Millisecond
	c.OutboxFlushInterval = 30 * time.Second
	c.LeaderboardLimit = 50
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
