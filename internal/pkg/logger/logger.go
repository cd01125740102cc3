// Package logger provides the process-wide leveled logger. Console output goes to
// stderr; the file variant writes JSON lines to a rotating file.
package logger

// Logger defines the logging interface.
// Arguments are joined like fmt.Sprint.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
