package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genielabs/genie-admin/internal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://admin.example.com
  timeout: 15s
storage:
  type: memory
admin:
  page_size: 50
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://admin.example.com", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, StorageTypeMemory, cfg.Storage.Type)
	assert.Equal(t, 50, cfg.Admin.PageSize)
	// unset values fall back to defaults
	assert.Equal(t, 10, cfg.Admin.SuggestionLimit)
	assert.Equal(t, 0, cfg.API.RetryMax)
	assert.Equal(t, "genie:admin:", cfg.Storage.Redis.KeyPrefix)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://file.example.com\n")
	t.Setenv("GENIE_API_BASE_URL", "https://env.example.com")
	t.Setenv("GENIE_ADMIN_PAGE_SIZE", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.Admin.PageSize)
}

func TestLoadConfigKeepsExplicitZeros(t *testing.T) {
	path := writeConfig(t, `
demo:
  seed: 0
  port: 0
storage:
  redis:
    key_prefix: ""
`)
	t.Setenv("GENIE_API_RETRY_MAX", "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Demo.Seed)
	assert.Equal(t, 0, cfg.Demo.Port)
	assert.Empty(t, cfg.Storage.Redis.KeyPrefix)
	assert.Equal(t, 3, cfg.API.RetryMax)
	assert.Equal(t, 120, cfg.Demo.UserCount)
	assert.Equal(t, "genie-demo-secret", cfg.Demo.AuthSecret)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSetLogLevel(t *testing.T) {
	SetLogLevel(&Config{Log: LogConfig{Level: "warn"}})
	assert.Equal(t, logrus.WarnLevel, internal.GetLogger().GetLevel())

	SetLogLevel(&Config{Log: LogConfig{Level: "bogus"}})
	assert.Equal(t, logrus.InfoLevel, internal.GetLogger().GetLevel())
}
