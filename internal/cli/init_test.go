package cli

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"tally/internal/config"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Defaults()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	logger := SetupLogger(cfg)
	assert.Equal(t, "app", logger.Component())
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	SetupLogger(nil)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
