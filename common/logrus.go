/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package common

import (
	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus logger to the Logger interface so that
// applications already using logrus can route library logs into it.
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewLogrusLogger creates a Logger backed by `logger`.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{logger: logger}
}

// IsLogLevel returns true if log level is greater or equal than `level`.
func (l *LogrusLogger) IsLogLevel(level LogLevel) bool {
	return l.logger.IsLevelEnabled(logrusLevel(level))
}

// Error logs error message.
func (l *LogrusLogger) Error(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

// Warning logs warning message.
func (l *LogrusLogger) Warning(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

// Notice logs notice message. Logrus has no notice level; info is used.
func (l *LogrusLogger) Notice(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Info logs info message.
func (l *LogrusLogger) Info(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Debug logs debug message.
func (l *LogrusLogger) Debug(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Trace logs trace message.
func (l *LogrusLogger) Trace(format string, args ...interface{}) {
	l.logger.Tracef(format, args...)
}

func logrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LogLevelError:
		return logrus.ErrorLevel
	case LogLevelWarning:
		return logrus.WarnLevel
	case LogLevelNotice, LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
