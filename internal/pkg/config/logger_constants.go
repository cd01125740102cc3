package config

// Log level constants
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// LogLevels lists the accepted levels from most to least verbose
var LogLevels = []string{LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelCritical}

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)
