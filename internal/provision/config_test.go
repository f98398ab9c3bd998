package provision

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_PlatformDatabaseURL(t *testing.T) {
	unsetEnv(t, "RFQ_DATABASE_URL")
	t.Setenv("DATABASE_URL", "postgres://platform/rfq")

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)
	assert.Equal(t, "postgres://platform/rfq", cfg.DatabaseURL)
	assert.False(t, cfg.PrintSchema)
}

func TestLoadConfig_PrefixedEnvWins(t *testing.T) {
	t.Setenv("RFQ_DATABASE_URL", "postgres://prefixed/rfq")
	t.Setenv("DATABASE_URL", "postgres://platform/rfq")

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)
	assert.Equal(t, "postgres://prefixed/rfq", cfg.DatabaseURL)
}

func TestLoadConfig_Flags(t *testing.T) {
	unsetEnv(t, "RFQ_DATABASE_URL", "DATABASE_URL")

	cfg, err := LoadConfig([]string{"--database-url=postgres://flag/rfq", "--print-schema=true"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag/rfq", cfg.DatabaseURL)
	assert.True(t, cfg.PrintSchema)
}

func TestLoadConfig_Missing(t *testing.T) {
	unsetEnv(t, "RFQ_DATABASE_URL", "DATABASE_URL")

	cfg, err := LoadConfig([]string{})
	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURL)
}
