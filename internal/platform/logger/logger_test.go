package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/scry-match/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("configured level filters output", func(t *testing.T) {
		buf := &TestLogBuffer{}
		logger, err := setup(buf, config.ServerConfig{LogLevel: "warn"})
		require.NoError(t, err)
		require.NotNil(t, logger)

		logger.Info("hidden")
		logger.Warn("shown", slog.String("component", "test"))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "shown", entries[0]["msg"])
		assert.Equal(t, "test", entries[0]["component"])
		assert.Same(t, logger, slog.Default())
	})

	t.Run("invalid level falls back to info with a warning", func(t *testing.T) {
		buf := &TestLogBuffer{}
		logger, err := setup(buf, config.ServerConfig{LogLevel: "chatty"})
		require.NoError(t, err)

		assert.True(t, buf.HasEntry(slog.LevelWarn, "invalid log level configured, using default level"))
		buf.Reset()

		logger.Debug("hidden")
		logger.Info("shown")
		assert.False(t, buf.HasEntry(slog.LevelDebug, "hidden"))
		assert.True(t, buf.HasEntry(slog.LevelInfo, "shown"))
	})
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	_, logger := NewTestLogger()
	_, fallback := NewTestLogger()

	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	ctx := WithLogger(context.Background(), logger)
	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, logger, got)
	assert.Same(t, logger, FromContextOrDefault(ctx, fallback))
}
