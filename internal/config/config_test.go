package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "salespro.db", cfg.LocalDBPath)
	assert.Equal(t, int64(5*1024*1024), cfg.QuotaBytes)
	assert.Empty(t, cfg.RemoteDSN)
	assert.True(t, cfg.AgentEnabled)
	assert.False(t, cfg.AgentAutoFix)
	assert.Equal(t, 10*time.Second, cfg.AgentInterval)
	assert.Equal(t, 30*time.Second, cfg.AgentWindow)
	assert.Equal(t, 5, cfg.OutboxMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.OutboxFlushInterval)
	assert.Equal(t, 50, cfg.LeaderboardLimit)
}

func TestParseEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SALESPRO_DB_PATH", "/tmp/other.db")
	t.Setenv("SALESPRO_QUOTA_BYTES", "1024")
	t.Setenv("SALESPRO_AGENT_AUTOFIX", "true")
	t.Setenv("SALESPRO_AGENT_INTERVAL", "3s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/tmp/other.db", cfg.LocalDBPath)
	assert.Equal(t, int64(1024), cfg.QuotaBytes)
	assert.True(t, cfg.AgentAutoFix)
	assert.Equal(t, 3*time.Second, cfg.AgentInterval)

	// Untouched fields keep their defaults.
	assert.Equal(t, 50, cfg.LeaderboardLimit)
}

func TestParseEnvLeavesDefaultsWhenUnset(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	before := *cfg
	parseEnv(cfg)

	require.Equal(t, before.LocalDBPath, cfg.LocalDBPath)
	require.Equal(t, before.QuotaBytes, cfg.QuotaBytes)
}
