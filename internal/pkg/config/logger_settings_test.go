//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{
			name:     "valid console logger",
			settings: &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole},
		},
		{
			name:     "debug level accepted",
			settings: &LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeConsole},
		},
		{
			name: "valid file logger with rotation",
			settings: &LoggerSettings{
				LogLevel:   LogLevelWarning,
				LogType:    LogTypeFile,
				FilePath:   "/var/log/toypas/cli.log",
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
		},
		{
			name:          "missing log level",
			settings:      &LoggerSettings{LogType: LogTypeConsole},
			expectedError: true,
		},
		{
			name:          "unknown log level",
			settings:      &LoggerSettings{LogLevel: "verbose", LogType: LogTypeConsole},
			expectedError: true,
		},
		{
			name:          "invalid log type",
			settings:      &LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"},
			expectedError: true,
		},
		{
			name: "file logger missing file path",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo, LogType: LogTypeFile, MaxSize: 10, MaxBackups: 3, MaxAge: 28,
			},
			expectedError: true,
		},
		{
			name: "file logger missing rotation settings",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "/tmp/toypas.log",
			},
			expectedError: true,
		},
		{
			name: "file logger max age too large",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "/tmp/toypas.log",
				MaxSize: 10, MaxBackups: 3, MaxAge: 366,
			},
			expectedError: true,
		},
		{
			name: "console logger ignores rotation settings",
			settings: &LoggerSettings{
				LogLevel: LogLevelError, LogType: LogTypeConsole, MaxSize: 1000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err, "expected an error")
			} else {
				assert.NoError(t, err, "expected no error")
			}
		})
	}
}

func TestLogLevels_AllAccepted(t *testing.T) {
	for _, level := range LogLevels {
		settings := &LoggerSettings{LogLevel: level, LogType: LogTypeConsole}
		assert.NoError(t, settings.Validate(), level)
	}
}

func TestNewCLILoggerSettings(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel string
	}{
		{"empty level stays quiet", "", LogLevelError},
		{"explicit level", LogLevelDebug, LogLevelDebug},
		{"level is case-insensitive", "WARNING", LogLevelWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewCLILoggerSettings(tt.level)
			assert.Equal(t, tt.wantLevel, settings.LogLevel)
			assert.Equal(t, LogTypeConsole, settings.LogType)
			assert.NoError(t, settings.Validate())
		})
	}
}

func TestLoggerSettings_ValidateListsLevels(t *testing.T) {
	err := NewCLILoggerSettings("verbose").Validate()
	assert.ErrorContains(t, err, "levels: debug, info, warning, error, critical")
}
