package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
lunchmoney:
  api_key: test-key
reconcile:
  page_days: 14
storage:
  database_path: /tmp/refunds.db
api:
  port: 9090
  allowed_origins:
    - http://localhost:3000
observability:
  logging:
    level: debug
    format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.LunchMoney.APIKey)
	assert.Equal(t, 14, cfg.Reconcile.PageDays)
	assert.Equal(t, "/tmp/refunds.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.API.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_LM_KEY", "secret-from-env")
	path := writeConfigFile(t, `
lunchmoney:
  api_key: ${TEST_LM_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.LunchMoney.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LUNCHMONEY_API_KEY", "env-key")
	t.Setenv("RECONCILE_PAGE_DAYS", "7")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := LoadFromEnv()

	assert.Equal(t, "env-key", cfg.LunchMoney.APIKey)
	assert.Equal(t, 7, cfg.Reconcile.PageDays)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "refund_sync.db", cfg.Storage.DatabasePath)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("RECONCILE_PAGE_DAYS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := LoadFromEnv()

	assert.Equal(t, 30, cfg.Reconcile.PageDays)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, 8080, cfg.API.Port)
}

func TestLoadOrEnvWithPath_FallsBackToEnv(t *testing.T) {
	t.Setenv("LUNCHMONEY_API_KEY", "fallback-key")

	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "fallback-key", cfg.LunchMoney.APIKey)
}
