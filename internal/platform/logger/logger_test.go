package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/raptrainer/internal/config"
	"github.com/phrazzld/raptrainer/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   slog.Level
		wantOK bool
	}{
		{name: "debug level", input: "debug", want: slog.LevelDebug, wantOK: true},
		{name: "info level", input: "info", want: slog.LevelInfo, wantOK: true},
		{name: "warn level", input: "warn", want: slog.LevelWarn, wantOK: true},
		{name: "error level", input: "error", want: slog.LevelError, wantOK: true},
		{name: "case insensitive - DEBUG", input: "DEBUG", want: slog.LevelDebug, wantOK: true},
		{name: "case insensitive - Info", input: "Info", want: slog.LevelInfo, wantOK: true},
		{name: "invalid falls back to info", input: "verbose", want: slog.LevelInfo, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestSetupWithWriterFiltersByLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn", Port: 8080}, &buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("info message")
	l.Warn("warn message", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "info message")
	require.Contains(t, out, "warn message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "value", entry["key"])

	// The configured logger becomes the default
	slog.Error("via default")
	assert.Contains(t, buf.String(), "via default")
}

func TestFromContext(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := slog.New(slog.NewTextHandler(io.Discard, nil)).With("trace_id", "abc")

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))

	ctx := logger.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, scoped, logger.FromContext(ctx))
}
