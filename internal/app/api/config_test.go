package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "DB_AUTO_MIGRATE", "STORE_TIMEOUT_MS", "REQUEST_TIMEOUT_MS",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.PostgresDSN)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Zero(t, cfg.RequestTimeout)
	assert.False(t, cfg.TemporalDisabled)
	assert.Equal(t, "local", cfg.Environment)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", " postgres://localhost/pawsitive ")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("STORE_TIMEOUT_MS", "250")
	t.Setenv("REQUEST_TIMEOUT_MS", "3000")
	t.Setenv("TEMPORAL_DISABLED", "yes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/pawsitive", cfg.PostgresDSN)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		"PORT":               "http",
		"STORE_TIMEOUT_MS":   "0",
		"REQUEST_TIMEOUT_MS": "soon",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	// present-but-empty variables are not overridden, so ENVIRONMENT must be unset
	require.NoError(t, os.Unsetenv("ENVIRONMENT"))
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=6000\nENVIRONMENT=staging\n"), 0o600))

	require.NoError(t, LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "7000", os.Getenv("PORT"))
	assert.Equal(t, "staging", os.Getenv("ENVIRONMENT"))
}
