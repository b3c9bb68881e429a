// Package logging provides the leveled logging facade for plugin code.
//
// Loggers are zerolog underneath. Inside the simulator they write through
// the active host's debug sink, which lands in the host's Log.txt; in
// tests they write wherever the test points them.
package logging

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog to provide subsystem-scoped child loggers.
type Logger struct {
	zl zerolog.Logger
}

// New creates a root logger writing to the given writer at the specified
// level. If w is nil the logger discards everything.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = io.Discard
	}
	zl := zerolog.New(w).With().Timestamp().Logger()
	zl = zl.Level(parseLevel(level))
	return &Logger{zl: zl}
}

// NewHost creates a logger that forwards complete lines to the active
// host's log file, each prefixed with the plugin signature so entries can
// be told apart from other plugins' output.
func NewHost(signature, level string) *Logger {
	cw := zerolog.ConsoleWriter{
		Out:        &DebugWriter{Prefix: signature},
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
	zl := zerolog.New(cw).With().Timestamp().Logger()
	zl = zl.Level(parseLevel(level))
	return &Logger{zl: zl}
}

// Sub returns a child logger tagged with a subsystem name.
func (l *Logger) Sub(subsystem string) *Logger {
	return &Logger{zl: l.zl.With().Str("subsystem", subsystem).Logger()}
}

// Debug logs at debug level.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info logs at info level.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn logs at warn level.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error logs at error level.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Zerolog returns the underlying zerolog.Logger for advanced use.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

// There is deliberately no Fatal: exiting would take the whole simulator
// down with the plugin, which nothing in this library is allowed to do.

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var (
	defMu sync.RWMutex
	def   = NewHost("xplm", "info")
)

// SetDefault installs the process-wide default logger. The plugin start
// path calls this with a host logger carrying the plugin's signature.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defMu.Lock()
	defer defMu.Unlock()
	def = l
}

// Default returns the process-wide default logger.
func Default() *Logger {
	defMu.RLock()
	defer defMu.RUnlock()
	return def
}

// Sub returns a child of the default logger. Library packages use this so
// their output follows whatever sink the plugin configured.
func Sub(subsystem string) *Logger {
	return Default().Sub(subsystem)
}
