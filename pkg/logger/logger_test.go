package logger

import (
	"exam_hub_backend/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, level(&config.Config{Server: config.ServerConfig{Mode: "debug"}}))
	assert.Equal(t, zapcore.InfoLevel, level(&config.Config{Server: config.ServerConfig{Mode: "release"}}))
	assert.Equal(t, zapcore.WarnLevel, level(&config.Config{Log: config.LogConfig{Level: "warn"}}))
	assert.Equal(t, zapcore.InfoLevel, level(&config.Config{Log: config.LogConfig{Level: "loud"}}))
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(&config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{File: path, MaxSizeMB: 1},
	})

	log.Info("exam created")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"exam created"`)
	assert.Contains(t, string(raw), `"logger":"exam-hub"`)
}
