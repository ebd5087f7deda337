package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelFromEnv(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		" error":  slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		t.Setenv("LOG_LEVEL", raw)
		assert.Equal(t, want, logLevelFromEnv(), "LOG_LEVEL=%q", raw)
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	assert.Equal(t, "local", envOrDefault("ENVIRONMENT", "local"))

	t.Setenv("ENVIRONMENT", "staging")
	assert.Equal(t, "staging", envOrDefault("ENVIRONMENT", "local"))
}
