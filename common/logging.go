/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Logger is the interface used for logging in the pixelpdf package.
type Logger interface {
	Error(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Notice(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Trace(format string, args ...interface{})
	IsLogLevel(level LogLevel) bool
}

// LogLevel is the verbosity level for logging.
type LogLevel int

// Log level enum where the most important logs have the lowest values.
const (
	LogLevelTrace   LogLevel = 5
	LogLevelDebug   LogLevel = 4
	LogLevelInfo    LogLevel = 3
	LogLevelNotice  LogLevel = 2
	LogLevelWarning LogLevel = 1
	LogLevelError   LogLevel = 0
)

// Log is the logger used by the library. Defaults to a no-op logger.
var Log Logger = DummyLogger{}

// SetLogger sets `logger` to be used by the pixelpdf library.
func SetLogger(logger Logger) {
	Log = logger
}

// DummyLogger does nothing.
type DummyLogger struct{}

// Error does nothing for dummy logger.
func (DummyLogger) Error(format string, args ...interface{}) {}

// Warning does nothing for dummy logger.
func (DummyLogger) Warning(format string, args ...interface{}) {}

// Notice does nothing for dummy logger.
func (DummyLogger) Notice(format string, args ...interface{}) {}

// Info does nothing for dummy logger.
func (DummyLogger) Info(format string, args ...interface{}) {}

// Debug does nothing for dummy logger.
func (DummyLogger) Debug(format string, args ...interface{}) {}

// Trace does nothing for dummy logger.
func (DummyLogger) Trace(format string, args ...interface{}) {}

// IsLogLevel returns true from dummy logger.
func (DummyLogger) IsLogLevel(level LogLevel) bool { return true }

// WriterLogger writes leveled log messages to an output writer.
type WriterLogger struct {
	LogLevel LogLevel
	Output   io.Writer
}

// NewWriterLogger creates a new writer logger.
func NewWriterLogger(logLevel LogLevel, writer io.Writer) *WriterLogger {
	return &WriterLogger{
		LogLevel: logLevel,
		Output:   writer,
	}
}

// NewConsoleLogger creates a new logger that writes to os.Stdout.
func NewConsoleLogger(logLevel LogLevel) *WriterLogger {
	return NewWriterLogger(logLevel, os.Stdout)
}

// IsLogLevel returns true if log level is greater or equal than `level`.
// Can be used to avoid resource intensive calls to loggers.
func (l WriterLogger) IsLogLevel(level LogLevel) bool {
	return l.LogLevel >= level
}

// Error logs error message.
func (l WriterLogger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, "[ERROR] ", format, args...)
}

// Warning logs warning message.
func (l WriterLogger) Warning(format string, args ...interface{}) {
	l.log(LogLevelWarning, "[WARNING] ", format, args...)
}

// Notice logs notice message.
func (l WriterLogger) Notice(format string, args ...interface{}) {
	l.log(LogLevelNotice, "[NOTICE] ", format, args...)
}

// Info logs info message.
func (l WriterLogger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, "[INFO] ", format, args...)
}

// Debug logs debug message.
func (l WriterLogger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, "[DEBUG] ", format, args...)
}

// Trace logs trace message.
func (l WriterLogger) Trace(format string, args ...interface{}) {
	l.log(LogLevelTrace, "[TRACE] ", format, args...)
}

// log writes the message prefixed by the source file name, line and `prefix`.
func (l WriterLogger) log(level LogLevel, prefix, format string, args ...interface{}) {
	if l.LogLevel < level {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}
	fmt.Fprintf(l.Output, fmt.Sprintf("%s%s:%d %s\n", prefix, file, line, format), args...)
}
