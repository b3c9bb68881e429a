package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/xplmtest"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	require.NotNil(t, log)

	log.Info().Msg("test message")
	assert.Contains(t, buf.String(), "test message")
}

func TestNewNilWriterDiscards(t *testing.T) {
	log := New(nil, "info")
	require.NotNil(t, log)

	// Must not panic, must not reach the host.
	sim := xplmtest.New(t)
	log.Info().Msg("dropped")
	assert.Empty(t, sim.LogText())
}

func TestSub(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	sub := log.Sub("mymodule")
	require.NotNil(t, sub)

	sub.Info().Msg("sub message")
	output := buf.String()
	assert.Contains(t, output, "sub message")
	assert.Contains(t, output, "mymodule")
}

func TestSubChain(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	sub1 := log.Sub("level1")
	sub2 := sub1.Sub("level2")

	sub2.Info().Msg("deep message")
	output := buf.String()
	assert.Contains(t, output, "deep message")
	assert.Contains(t, output, "level2")
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("debug msg")
	log.Info().Msg("info msg")
	assert.Empty(t, buf.String(), "debug and info should be filtered at warn level")

	log.Warn().Msg("warn msg")
	assert.Contains(t, buf.String(), "warn msg")

	buf.Reset()
	log.Error().Msg("error msg")
	assert.Contains(t, buf.String(), "error msg")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"silent", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"fatal", zerolog.InfoLevel}, // no fatal in a plugin; falls back to info
		{"INFO", zerolog.InfoLevel},  // case-sensitive, defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	zl := log.Zerolog()
	assert.NotZero(t, zl)

	zl.Info().Msg("direct zerolog")
	assert.Contains(t, buf.String(), "direct zerolog")
}

func TestSilentLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "silent")

	log.Debug().Msg("should not appear")
	log.Info().Msg("should not appear")
	log.Warn().Msg("should not appear")
	log.Error().Msg("should not appear")

	assert.Empty(t, buf.String())
}

func TestNewHostWritesToHostLog(t *testing.T) {
	sim := xplmtest.New(t)

	log := NewHost("com.example.test", "info")
	log.Info().Msg("hello from the plugin")

	out := sim.LogText()
	assert.Contains(t, out, "com.example.test")
	assert.Contains(t, out, "hello from the plugin")
}

func TestDebugWriterAppendsNewline(t *testing.T) {
	sim := xplmtest.New(t)

	w := &DebugWriter{Prefix: "sig"}
	n, err := w.Write([]byte("no newline"))
	require.NoError(t, err)
	assert.Equal(t, len("no newline"), n)
	assert.Equal(t, "sig: no newline\n", sim.LogText())
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	var buf bytes.Buffer
	SetDefault(New(&buf, "info"))
	Sub("part").Info().Msg("routed")
	assert.Contains(t, buf.String(), "routed")
	assert.Contains(t, buf.String(), "part")

	// nil is ignored rather than installed.
	SetDefault(nil)
	require.NotNil(t, Default())
}

func TestPanicked(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "error")

	func() {
		defer Catch(log, "menu callback")
		panic("boom")
	}()

	out := buf.String()
	assert.Contains(t, out, "recovered panic in host callback")
	assert.Contains(t, out, "menu callback")
	assert.Contains(t, out, "boom")
}
