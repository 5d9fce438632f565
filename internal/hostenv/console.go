package hostenv

import (
	"fmt"
	"io"
)

// ConsoleHost is the fallback host for plain terminals: no identity,
// haptics are no-ops and alerts go to the given writer.
type ConsoleHost struct {
	w io.Writer
}

func NewConsoleHost(w io.Writer) *ConsoleHost {
	return &ConsoleHost{w: w}
}

func (h *ConsoleHost) Identity() (Identity, bool) {
	return Identity{}, false
}

func (h *ConsoleHost) Haptic(kind HapticKind) {}

func (h *ConsoleHost) Alert(title, message string) {
	fmt.Fprintf(h.w, "[%s] %s\n", title, message)
}
