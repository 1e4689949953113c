package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "backups", cfg.BackupDir)
	assert.Equal(t, "exports", cfg.ExportDir)

	require.Len(t, cfg.Connections, 1)
	assert.Equal(t, "default", cfg.Connections[0].Name)
	assert.Equal(t, "sqlite", cfg.Connections[0].Type)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "databridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9000"
log_level: debug
timeout: 5s
backup_dir: /var/backups/databridge
connections:
  - name: main
    type: postgres
    dsn: postgres://app:secret@db:5432/app
  - name: cache
    type: redis
    dsn: redis://cache:6379/0
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/var/backups/databridge", cfg.BackupDir)

	require.Len(t, cfg.Connections, 2)
	assert.Equal(t, "main", cfg.Connections[0].Name)
	assert.Equal(t, "redis", cfg.Connections[1].Type)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABRIDGE_LISTEN", ":7070")
	t.Setenv("DATABRIDGE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "warn", cfg.LogLevel)
}
