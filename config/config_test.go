package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0 2 * * *", cfg.Reminder.GenerateSchedule)
	assert.Equal(t, 100, cfg.Reminder.BatchSize)
	assert.Equal(t, "USD", cfg.Pricing.FallbackCurrency)
	assert.Equal(t, 24*time.Hour, cfg.Pricing.CacheTTL)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("REMINDER_BATCH_SIZE", "not-a-number")
	t.Setenv("PRICE_CACHE_TTL", "90m")
	t.Setenv("SCHEDULER_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 100, cfg.Reminder.BatchSize, "unparsable values keep the default")
	assert.Equal(t, 90*time.Minute, cfg.Pricing.CacheTTL)
	assert.False(t, cfg.Reminder.SchedulerEnabled)
}
