package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/ordercore/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(config.LogConfig{Mode: "production", Level: "warn"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestNew_File(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ordercore.log")

	logger, err := New(config.LogConfig{Level: "info", FileEnable: true, Filename: filename})
	require.NoError(t, err)

	logger.Info("stock underflow")
	_ = logger.Sync()

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"stock underflow"`)
}
