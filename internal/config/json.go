package config

import (
	"encoding/json"
	"os"

	"github.com/salespro-app/salespro/internal/flagx"
	"github.com/salespro-app/salespro/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type JsonConfig struct {
	LocalDBPath         *string         `json:"local_db_path"`
	QuotaBytes          *int64          `json:"quota_bytes"`
	RemoteDSN           *string         `json:"remote_dsn"`
	BotToken            *string         `json:"bot_token"`
	AgentEnabled        *bool           `json:"agent_enabled"`
	AgentAutoFix        *bool           `json:"agent_auto_fix"`
	AgentInterval       *timex.Duration `json:"agent_interval"`
	AgentWindow         *timex.Duration `json:"agent_window"`
	OutboxMaxAttempts   *int            `json:"outbox_max_attempts"`
	OutboxBaseDelay     *timex.Duration `json:"outbox_base_delay"`
	OutboxFlushInterval *timex.Duration `json:"outbox_flush_interval"`
	LeaderboardLimit    *int            `json:"leaderboard_limit"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_endpoint"`
	S3RootUser          *string         `json:"s3_user"`
	S3RootPassword      *string         `json:"s3_password"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c/-config flags. Missing file path means no JSON layer. Fields absent
// from the file keep their current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.LocalDBPath != nil {
		cfg.LocalDBPath = *jc.LocalDBPath
	}
	if jc.QuotaBytes != nil {
		cfg.QuotaBytes = *jc.QuotaBytes
	}
	if jc.RemoteDSN != nil {
		cfg.RemoteDSN = *jc.RemoteDSN
	}
	if jc.BotToken != nil {
		cfg.BotToken = *jc.BotToken
	}
	if jc.AgentEnabled != nil {
		cfg.AgentEnabled = *jc.AgentEnabled
	}
	if jc.AgentAutoFix != nil {
		cfg.AgentAutoFix = *jc.AgentAutoFix
	}
	if jc.AgentInterval != nil {
		cfg.AgentInterval = jc.AgentInterval.Duration
	}
	if jc.AgentWindow != nil {
		cfg.AgentWindow = jc.AgentWindow.Duration
	}
	if jc.OutboxMaxAttempts != nil {
		cfg.OutboxMaxAttempts = *jc.OutboxMaxAttempts
	}
	if jc.OutboxBaseDelay != nil {
		cfg.OutboxBaseDelay = jc.OutboxBaseDelay.Duration
	}
	if jc.OutboxFlushInterval != nil {
		cfg.OutboxFlushInterval = jc.OutboxFlushInterval.Duration
	}
	if jc.LeaderboardLimit != nil {
		cfg.LeaderboardLimit = *jc.LeaderboardLimit
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *jc.S3BaseEndpoint
	}
	if jc.S3RootUser != nil {
		cfg.S3RootUser = *jc.S3RootUser
	}
	if jc.S3RootPassword != nil {
		cfg.S3RootPassword = *jc.S3RootPassword
	}
}
