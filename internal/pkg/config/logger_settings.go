package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoggerSettings configures the diagnostic log of toypas-cli and toypas-rest-api.
// Diagnostics never share a stream with program output: the console variant writes to
// stderr and the file variant to a rotated JSON log.
type LoggerSettings struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=info debug error warning critical"`
	LogType  string `mapstructure:"log_type" validate:"required,oneof=console file"`
	// FilePath and the rotation limits only apply to the file logger
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// NewCLILoggerSettings returns console settings at level. An empty level keeps the CLI
// quiet apart from errors, so stdout carries nothing but results.
func NewCLILoggerSettings(level string) *LoggerSettings {
	if level == "" {
		level = LogLevelError
	}
	return &LoggerSettings{
		LogLevel: strings.ToLower(level),
		LogType:  LogTypeConsole,
	}
}

// Validate checks the level, the type and, for file logging, the rotation limits
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings (levels: %s): %w", strings.Join(LogLevels, ", "), err)
	}

	if s.LogType != LogTypeFile {
		return nil
	}

	switch {
	case s.FilePath == "":
		return fmt.Errorf("file path is required for file logger")
	case s.MaxSize < 1 || s.MaxSize > 100:
		return fmt.Errorf("max size must be between 1 and 100 MB, got %d", s.MaxSize)
	case s.MaxBackups < 1 || s.MaxBackups > 10:
		return fmt.Errorf("max backups must be between 1 and 10, got %d", s.MaxBackups)
	case s.MaxAge < 1 || s.MaxAge > 365:
		return fmt.Errorf("max age must be between 1 and 365 days, got %d", s.MaxAge)
	}
	return nil
}
