package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminmoo/penta-wake/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), tt.input)
	}
}

func TestOpenOutputStreams(t *testing.T) {
	w, closer, err := openOutput("stdout")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)
	assert.NoError(t, closer())

	for _, name := range []string{"stderr", ""} {
		w, closer, err := openOutput(name)
		require.NoError(t, err)
		assert.Equal(t, os.Stderr, w, name)
		assert.NoError(t, closer())
	}
}

func TestOpenOutputInvalidPath(t *testing.T) {
	_, _, err := openOutput("/nonexistent/dir/log.txt")
	assert.Error(t, err)
}

func TestNewJSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wake.log")

	log, closer, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: path}, false)
	require.NoError(t, err)

	log.Debug("filtered")
	log.Info("wake signal sent", "address", "AA:BB:CC:DD:EE:FF")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"wake signal sent"`)
	assert.Contains(t, string(data), `"address":"AA:BB:CC:DD:EE:FF"`)
	assert.NotContains(t, string(data), "filtered")
}

func TestNewTextDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wake.log")

	log, closer, err := New(config.LoggerConfig{Level: "debug", Format: "text", Output: path}, false)
	require.NoError(t, err)
	log.Debug("connecting", "address", "AA:BB:CC:DD:EE:FF")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
	assert.Contains(t, string(data), "msg=connecting")
}

func TestNewInvalidOutput(t *testing.T) {
	_, _, err := New(config.LoggerConfig{Output: "/nonexistent/dir/app.log"}, false)
	assert.Error(t, err)
}

func TestNewVerboseOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wake.log")

	log, closer, err := New(config.LoggerConfig{Level: "error", Format: "text", Output: path}, true)
	require.NoError(t, err)
	log.Debug("discovering services")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"discovering services\"")
	assert.Contains(t, string(data), "source=")
	assert.Contains(t, string(data), "logger_test.go")
}

func TestNewFileKeepsFullTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wake.log")

	log, closer, err := New(config.LoggerConfig{Format: "text", Output: path}, false)
	require.NoError(t, err)
	log.Info("wake signal sent")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "time="+time.Now().Format("2006-01-02"))
}

func TestShortTime(t *testing.T) {
	ts := time.Date(2026, 10, 16, 9, 5, 7, 250_000_000, time.UTC)

	a := shortTime(nil, slog.Time(slog.TimeKey, ts))
	assert.Equal(t, "09:05:07.250", a.Value.String())

	other := slog.String("address", "AA:BB:CC:DD:EE:FF")
	assert.Equal(t, other, shortTime(nil, other))
	assert.Equal(t, slog.KindTime, shortTime([]string{"g"}, slog.Time(slog.TimeKey, ts)).Value.Kind())
}

func TestTerminal(t *testing.T) {
	for _, out := range []string{"", "stdout", "stderr", "STDERR"} {
		assert.True(t, Terminal(config.LoggerConfig{Output: out}), out)
	}
	assert.False(t, Terminal(config.LoggerConfig{Output: "/var/log/penta-wake.log"}))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
