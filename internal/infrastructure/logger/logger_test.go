package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/infrastructure/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	log := config.LogConfig{Level: "debug", Format: "console", Output: "stderr", MaxSizeMB: 50, Compress: true}

	dev := FromAppConfig(config.AppConfig{Env: "development"}, log)
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, "debug", dev.Level)
	assert.Equal(t, "stderr", dev.Output)
	assert.Equal(t, 50, dev.MaxSizeMB)
	assert.True(t, dev.Compress)

	prod := FromAppConfig(config.AppConfig{Env: "production"}, log)
	assert.Equal(t, "json", prod.Format)
}

func TestNew_Stdout(t *testing.T) {
	l, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	l.Info("written to file")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
}

func TestNew_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "app.log")

	l, err := New(&Config{Level: "info", Format: "console", Output: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	l.Info("rotated writer")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
