// Package logging provides a small leveled logger threaded explicitly through the program
// rather than used as a global singleton, fanning out to stderr and, optionally, syslog.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	gsyslog "github.com/hashicorp/go-syslog"
)

// Level is a logging severity, lowest-to-highest.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

func (l Level) syslogPriority() gsyslog.Priority {
	switch l {
	case LevelDebug:
		return gsyslog.LOG_DEBUG
	case LevelInfo:
		return gsyslog.LOG_INFO
	case LevelWarning:
		return gsyslog.LOG_WARNING
	case LevelError:
		return gsyslog.LOG_ERR
	case LevelCritical:
		return gsyslog.LOG_CRIT
	default:
		return gsyslog.LOG_CRIT
	}
}

// Logger fans a leveled message out to an optional console writer and an optional syslog
// backend. Either sink may be nil. A Logger is safe to pass by value; its sinks are shared.
type Logger struct {
	Console      io.Writer
	Syslog       gsyslog.Syslogger
	MinimumLevel Level
	prefix       string
}

// NewConsoleLogger returns a Logger that writes to w and nowhere else.
func NewConsoleLogger(w io.Writer, minimum Level) Logger {
	return Logger{Console: w, MinimumLevel: minimum}
}

// NewSyslogLogger opens a syslog connection for the given facility (e.g. "daemon", "local0")
// tagged with ident, in addition to writing to console.
func NewSyslogLogger(console io.Writer, minimum Level, facility, ident string) (Logger, error) {
	backend, err := gsyslog.NewLogger(gsyslog.LOG_INFO, strings.ToUpper(facility), ident)
	if err != nil {
		return Logger{}, fmt.Errorf("logging: failed to open syslog: %w", err)
	}
	return Logger{Console: console, Syslog: backend, MinimumLevel: minimum}, nil
}

// With returns a copy of l whose messages are prefixed with name, for component-scoped logging
// (e.g. log.With("httpserver")).
func (l Logger) With(name string) Logger {
	if l.prefix != "" {
		name = l.prefix + "." + name
	}
	l.prefix = name
	return l
}

func (l Logger) log(level Level, format string, args ...interface{}) {
	if level < l.MinimumLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)

	if l.Console != nil {
		line := msg
		if l.prefix != "" {
			line = l.prefix + ": " + line
		}
		fmt.Fprintf(l.Console, "%s %s: %s\n", time.Now().Format(time.RFC3339), level, line)
	}
	if l.Syslog != nil {
		_ = l.Syslog.WriteLevel(level.syslogPriority(), []byte(msg))
	}
}

func (l Logger) Debugf(format string, args ...interface{})    { l.log(LevelDebug, format, args...) }
func (l Logger) Infof(format string, args ...interface{})     { l.log(LevelInfo, format, args...) }
func (l Logger) Warningf(format string, args ...interface{})  { l.log(LevelWarning, format, args...) }
func (l Logger) Errorf(format string, args ...interface{})    { l.log(LevelError, format, args...) }
func (l Logger) Criticalf(format string, args ...interface{}) { l.log(LevelCritical, format, args...) }

// Discard is a Logger with no sinks at all, handy as a zero-cost default in tests.
var Discard = Logger{}
