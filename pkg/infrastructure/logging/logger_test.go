package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_WritesJSONWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prettybom.log")

	logger, err := NewLogger(Config{
		Level:      "debug",
		Format:     "json",
		OutputPath: path,
		Fields:     map[string]string{"service": "prettybom"},
	})
	require.NoError(t, err)

	logger.Debug("processing committed", zap.String("bom", "layout"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"processing committed"`)
	assert.Contains(t, string(data), `"bom":"layout"`)
	assert.Contains(t, string(data), `"service":"prettybom"`)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(Config{Level: "verbose", OutputPath: filepath.Join(t.TempDir(), "out.log")})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestNewNopLogger(t *testing.T) {
	assert.False(t, NewNopLogger().Core().Enabled(zap.ErrorLevel))
}
