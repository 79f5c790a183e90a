// Package lumber provides the structured logger used across herald.
package lumber

import (
	errs "github.com/LambdaTest/herald/pkg/errors"
)

// Fields is the type of the structured fields attached to a log entry.
type Fields map[string]interface{}

// A global variable so that log functions can be directly accessed
var log Logger

// Log levels.
const (
	// Debug has verbose message
	Debug = "debug"
	// Info is default log level
	Info = "info"
	// Warn is for logging messages about possible issues
	Warn = "warn"
	// Error is for logging errors
	Error = "error"
	// Fatal is for logging fatal messages. The sytem shutsdown after logging the message.
	Fatal = "fatal"
)

// Logger instance types.
const (
	InstanceZapLogger int = iota
	InstanceLogrusLogger
)

// Logger is our contract for the logger
type Logger interface {
	Debugf(format string, args ...interface{})

	Infof(format string, args ...interface{})

	Warnf(format string, args ...interface{})

	Errorf(format string, args ...interface{})

	Fatalf(format string, args ...interface{})

	Panicf(format string, args ...interface{})

	WithFields(keyValues Fields) Logger
}

// LoggingConfig stores the config for the logger
// For some loggers there can only be one level across writers, for such the level of Console is picked by default
type LoggingConfig struct {
	EnableConsole     bool
	ConsoleJSONFormat bool
	ConsoleLevel      string
	EnableFile        bool
	FileJSONFormat    bool
	FileLevel         string
	FileLocation      string
}

// NewLogger returns an instance of logger
func NewLogger(config *LoggingConfig, verbose bool, loggerInstance int) (Logger, error) {
	if !verbose {
		config.ConsoleLevel = Info
		config.FileLevel = Info
	}
	switch loggerInstance {
	case InstanceZapLogger:
		logger, err := newZapLogger(config)
		if err != nil {
			return nil, err
		}
		log = logger
		return logger, nil

	case InstanceLogrusLogger:
		logger, err := newLogrusLogger(config)
		if err != nil {
			return nil, err
		}
		log = logger
		return logger, nil

	default:
		return nil, errs.ErrInvalidLoggerInstance
	}
}

// Debugf logs through the last logger built by NewLogger.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs through the last logger built by NewLogger.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs through the last logger built by NewLogger.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs through the last logger built by NewLogger.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Fatalf logs through the last logger built by NewLogger.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}

// Panicf logs through the last logger built by NewLogger.
func Panicf(format string, args ...interface{}) {
	log.Panicf(format, args...)
}

// WithFields returns a child of the last logger built by NewLogger.
func WithFields(keyValues Fields) Logger {
	return log.WithFields(keyValues)
}
