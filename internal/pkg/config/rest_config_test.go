//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
logger:
  log_level: debug
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
execution:
  max_upper_bound: 500
`)

	cfg, err := InitializeRestConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, 500, cfg.Execution.MaxUpperBound)
	assert.Equal(t, DefaultMaxCallDepth, cfg.Execution.MaxCallDepth)
	assert.Equal(t, DefaultExecutionTimeoutMS, cfg.Execution.ExecutionTimeoutMS)
}

func TestInitializeRestConfig_Defaults(t *testing.T) {
	cfg, err := InitializeRestConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Equal(t, "toypas.db", cfg.Database.DSN)
}

func TestInitializeRestConfig_EnvOverride(t *testing.T) {
	t.Setenv("TOYPAS_PORT", "7070")

	cfg, err := InitializeRestConfig(writeConfig(t, "port: \"9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestInitializeRestConfig_Invalid(t *testing.T) {
	_, err := InitializeRestConfig(writeConfig(t, `
logger:
  log_level: loud
  log_type: console
`))
	assert.Error(t, err)
}

func TestInitializeRestConfig_MissingFile(t *testing.T) {
	_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExecutionSettingsValidation(t *testing.T) {
	settings := NewDefaultExecutionSettings()
	require.NoError(t, settings.Validate())

	settings.MaxCallDepth = 0
	assert.Error(t, settings.Validate())
}
