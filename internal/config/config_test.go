package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
jwt:
  secret: short
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, []string{"application/pdf"}, cfg.Upload.ExamContentTypes)
	assert.EqualValues(t, 50, cfg.Upload.MaxSizeMB)
	assert.Equal(t, "logs/app.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Log.MaxBackups)
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: too-short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: mysql
storage:
  type: minio
`)
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoadConfigLogLevelFromEnv(t *testing.T) {
	dir := writeConfig(t, `
log:
  level: info
storage:
  type: minio
`)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
