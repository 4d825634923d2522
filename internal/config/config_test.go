package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcompare/internal"
	"bootcompare/internal/errors"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"BOOTSTRAP_SIMULATIONS", "BOOTSTRAP_SEED", "BOOTSTRAP_WORKERS", "BOOTSTRAP_ALPHA", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Bootstrap.Simulations)
	assert.Equal(t, uint64(0), cfg.Bootstrap.Seed)
	assert.Equal(t, 1, cfg.Bootstrap.Workers)
	assert.Equal(t, 0.05, cfg.Bootstrap.Alpha)
	assert.Equal(t, internal.LogLevelInfo, cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOTSTRAP_SIMULATIONS", "5000")
	t.Setenv("BOOTSTRAP_SEED", "42")
	t.Setenv("BOOTSTRAP_WORKERS", "4")
	t.Setenv("BOOTSTRAP_ALPHA", "0.01")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Bootstrap.Simulations)
	assert.Equal(t, uint64(42), cfg.Bootstrap.Seed)
	assert.Equal(t, 4, cfg.Bootstrap.Workers)
	assert.Equal(t, 0.01, cfg.Bootstrap.Alpha)
	assert.Equal(t, internal.LogLevelDebug, cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string][2]string{
		"bad seed":        {"BOOTSTRAP_SEED", "-1"},
		"zero sims":       {"BOOTSTRAP_SIMULATIONS", "0"},
		"zero workers":    {"BOOTSTRAP_WORKERS", "0"},
		"alpha too large": {"BOOTSTRAP_ALPHA", "1.5"},
		"unknown level":   {"LOG_LEVEL", "chatty"},
		"malformed sims":  {"BOOTSTRAP_SIMULATIONS", "abc"},
		"malformed alpha": {"BOOTSTRAP_ALPHA", "five percent"},
		"float workers":   {"BOOTSTRAP_WORKERS", "2.5"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
