package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.LogConfig
		enabled      zapcore.Level
		disabled     zapcore.Level
		checkDisable bool
	}{
		{name: "json on stdout", cfg: config.LogConfig{Level: "info", Format: "json"}, enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel, checkDisable: true},
		{name: "console on stderr", cfg: config.LogConfig{Level: "debug", Format: "console", Output: "stderr"}, enabled: zapcore.DebugLevel},
		{name: "invalid level falls back to info", cfg: config.LogConfig{Level: "verbose"}, enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel, checkDisable: true},
		{name: "error level", cfg: config.LogConfig{Level: "error", Output: "stdout"}, enabled: zapcore.ErrorLevel, disabled: zapcore.WarnLevel, checkDisable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(&tt.cfg)

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.checkDisable {
				assert.False(t, logger.Core().Enabled(tt.disabled))
			}
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	logger, err := NewLogger(&config.LogConfig{Level: "info", Output: path})
	require.NoError(t, err)

	logger.Info("Model loaded", zap.String("name", "sms-nb"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Model loaded"`)
}

func TestNewLogger_BadFileOutput(t *testing.T) {
	_, err := NewLogger(&config.LogConfig{Output: filepath.Join(t.TempDir(), "missing", "dir", "api.log")})

	assert.Error(t, err)
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("Prediction", zap.String("label", "Spam"), zap.Float64("confidence", 0.97))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Prediction", line["message"])
	assert.Equal(t, ServiceName, line["service"])
	assert.Equal(t, "Spam", line["label"])
	assert.Equal(t, 0.97, line["confidence"])
	assert.Contains(t, line, "timestamp")
	assert.Contains(t, line, "caller")
}
