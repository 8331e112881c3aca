package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"neonmap/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zap.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zap.InfoLevel, ParseLevel(""))
	assert.Equal(t, zap.InfoLevel, ParseLevel("verbose"))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "neonmap.log")

	logger, err := New(config.LogConfig{Level: "debug", File: path}, SinkFile)
	require.NoError(t, err)
	logger.Info("map saved", zap.String("map", "7"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"map saved"`)
	assert.Contains(t, string(data), `"map":"7"`)
}

func TestNew_NoFileIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{}, SinkFile)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
