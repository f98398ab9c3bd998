package app

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "RFQ_ADDR", "RFQ_DATABASE_URL", "RFQ_HEALTH_INTERVAL", "RFQ_GRACEFUL_READINESS_DELAY"} {
		// Setenv restores the original value after the test.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4000", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10*time.Second, cfg.Health.Interval)
	assert.Equal(t, 10000, cfg.Health.MaxGoroutines)
	assert.Equal(t, time.Second, cfg.Health.MaxGCPause)
	assert.Equal(t, 3*time.Second, cfg.Graceful.ReadinessDelay)
	assert.Equal(t, 15*time.Second, cfg.Graceful.ShutdownTimeout)
}

func TestLoadConfig_Port(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "5000")

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr)
}

func TestLoadConfig_ExplicitAddrWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "5000")
	t.Setenv("RFQ_ADDR", "127.0.0.1:9000")

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
}

func TestLoadConfig_DatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://platform/rfq")

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)
	assert.Equal(t, "postgres://platform/rfq", cfg.DatabaseURL)
}

func TestLoadConfig_InvalidInterval(t *testing.T) {
	for name, interval := range map[string]string{
		"zero":     "0s",
		"negative": "-1s",
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("RFQ_HEALTH_INTERVAL", interval)

			_, err := LoadConfig([]string{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "health interval")
		})
	}
}
