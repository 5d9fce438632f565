package hostenv

import (
	"context"
	"strings"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"github.com/salespro-app/salespro/internal/logging"
)

// TelegramHost derives identity from a Telegram Mini Apps init-data payload.
// When botToken is set the payload signature and expiry are validated;
// without a token the payload is parsed as-is (development mode).
type TelegramHost struct {
	identity Identity
	ok       bool
	logger   logging.Logger
}

func NewTelegramHost(rawInitData, botToken string, expIn time.Duration, logger logging.Logger) *TelegramHost {
	h := &TelegramHost{logger: logger}
	ctx := context.Background()

	if rawInitData == "" {
		return h
	}

	if botToken != "" {
		if err := initdata.Validate(rawInitData, botToken, expIn); err != nil {
			logger.Warn(ctx, "telegram init data rejected", "error", err)
			return h
		}
	}

	parsed, err := initdata.Parse(rawInitData)
	if err != nil {
		logger.Warn(ctx, "telegram init data unparsable", "error", err)
		return h
	}
	if parsed.User.ID == 0 {
		return h
	}

	name := strings.TrimSpace(parsed.User.FirstName + " " + parsed.User.LastName)
	h.identity = Identity{
		ID:          formatUserID(parsed.User.ID),
		DisplayName: name,
		Username:    parsed.User.Username,
	}
	h.ok = true
	return h
}

func (h *TelegramHost) Identity() (Identity, bool) {
	return h.identity, h.ok
}

// Haptic has no real bridge outside the WebApp container; recorded at debug
// level so roleplay flows can still be traced.
func (h *TelegramHost) Haptic(kind HapticKind) {
	h.logger.Debug(context.Background(), "haptic", "kind", string(kind))
}

func (h *TelegramHost) Alert(title, message string) {
	h.logger.Warn(context.Background(), "host alert", "title", title, "message", message)
}
