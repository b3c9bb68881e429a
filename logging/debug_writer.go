package logging

import (
	"strings"

	"github.com/xplm-go/xplm/host"
)

// DebugWriter is an io.Writer that forwards each write to the active
// host's debug sink. The host flushes its log file on every call, so the
// writer expects whole lines (zerolog emits one per event) rather than
// byte-at-a-time output.
type DebugWriter struct {
	// Prefix is prepended to every line, typically the plugin signature.
	Prefix string
}

// Write forwards p to the host log. It never fails; a write with no host
// installed goes to the null host and vanishes.
func (w *DebugWriter) Write(p []byte) (int, error) {
	s := string(p)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if w.Prefix != "" {
		s = w.Prefix + ": " + s
	}
	host.Active().DebugString(s)
	return len(p), nil
}
