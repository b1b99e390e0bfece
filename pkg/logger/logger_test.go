package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		format        string
		expectedError bool
		expectedLevel zapcore.Level
	}{
		{name: "info json", level: "info", format: "json", expectedLevel: zapcore.InfoLevel},
		{name: "debug console", level: "debug", format: "console", expectedLevel: zapcore.DebugLevel},
		{name: "warn json", level: "warn", format: "json", expectedLevel: zapcore.WarnLevel},
		{name: "error console", level: "error", format: "console", expectedLevel: zapcore.ErrorLevel},
		{name: "invalid level", level: "verbose", format: "json", expectedError: true},
		{name: "invalid format", level: "info", format: "xml", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.expectedLevel))
			if tt.expectedLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.expectedLevel-1))
			}
		})
	}
}
