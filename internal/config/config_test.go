package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarlsen/switchboard/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info-booth", cfg.System)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.DialTone)
	assert.Equal(t, ":8080", cfg.Admin.Listen)
	assert.False(t, cfg.Admin.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.Redis.TTL)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
system: boot
dial_tone: 500ms
admin:
  enabled: true
  listen: :9090
redis:
  enabled: true
  address: redis:6379
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "boot", cfg.System)
	assert.Equal(t, 500*time.Millisecond, cfg.DialTone)
	assert.True(t, cfg.Admin.Enabled)
	assert.Equal(t, ":9090", cfg.Admin.Listen)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))

	t.Setenv("SWITCHBOARD_LOG_LEVEL", "debug")
	t.Setenv("SWITCHBOARD_ADMIN__LISTEN", ":7070")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":7070", cfg.Admin.Listen)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
