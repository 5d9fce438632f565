// Package hostenv abstracts the hosting client environment. In production
// that is the Telegram WebApp container, which supplies the user's identity
// and UI affordances (haptics, alerts); outside Telegram a console fallback
// is used. The sync subsystem only uses it to seed the initial candidate
// record and to surface health alerts.
package hostenv

import "strconv"

type HapticKind string

const (
	HapticSuccess HapticKind = "success"
	HapticWarning HapticKind = "warning"
	HapticError   HapticKind = "error"
	HapticLight   HapticKind = "light"
)

// Identity is the host-provided user identity.
type Identity struct {
	ID          string
	DisplayName string
	Username    string
}

// Host is the capability interface the rest of the client depends on.
type Host interface {
	// Identity returns the host-provided identity, or ok=false when the
	// host knows nothing about the user.
	Identity() (Identity, bool)

	// Haptic triggers haptic feedback. Best-effort, may be a no-op.
	Haptic(kind HapticKind)

	// Alert shows a blocking message to the user.
	Alert(title, message string)
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
