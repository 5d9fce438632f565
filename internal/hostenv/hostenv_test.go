package hostenv

import (
	"bytes"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespro-app/salespro/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConsoleHost(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHost(&buf)

	_, ok := h.Identity()
	assert.False(t, ok)

	h.Haptic(HapticSuccess)
	assert.Empty(t, buf.String())

	h.Alert("System alert", "something happened")
	assert.Contains(t, buf.String(), "System alert")
	assert.Contains(t, buf.String(), "something happened")
}

func TestTelegramHostEmptyInitData(t *testing.T) {
	h := NewTelegramHost("", "", time.Hour, testLogger())

	_, ok := h.Identity()
	assert.False(t, ok)
}

func TestTelegramHostGarbageInitData(t *testing.T) {
	h := NewTelegramHost("%%%not-a-query", "", time.Hour, testLogger())

	_, ok := h.Identity()
	assert.False(t, ok)
}

func TestTelegramHostDevModeParsesIdentity(t *testing.T) {
	// Without a bot token the payload is parsed but not validated.
	raw := url.Values{
		"user":      {`{"id":42,"first_name":"Ann","last_name":"Lee","username":"annlee"}`},
		"auth_date": {"1700000000"},
	}.Encode()

	h := NewTelegramHost(raw, "", time.Hour, testLogger())

	id, ok := h.Identity()
	require.True(t, ok)
	assert.Equal(t, "42", id.ID)
	assert.Equal(t, "Ann Lee", id.DisplayName)
	assert.Equal(t, "annlee", id.Username)
}

func TestTelegramHostRejectsBadSignature(t *testing.T) {
	raw := url.Values{
		"user":      {`{"id":42,"first_name":"Ann"}`},
		"auth_date": {"1700000000"},
		"hash":      {"deadbeef"},
	}.Encode()

	h := NewTelegramHost(raw, "123:bot-token", time.Hour, testLogger())

	_, ok := h.Identity()
	assert.False(t, ok)
}
