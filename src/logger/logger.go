package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// -----------------------------------------------------------------------------

const (
	LevelDebug = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// levelSource is satisfied by models.MConfig and anything embedding it.
type levelSource interface {
	GetLogLevel() string
}

// -----------------------------------------------------------------------------

// Logger provides leveled, component-tagged logging
type Logger struct {
	name   string
	logger *log.Logger
	level  int
	exit   func(int)
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance writing to stdout
func NewLogger(config interface{}, name string) *Logger {
	return NewLoggerTo(os.Stdout, config, name)
}

// NewLoggerTo creates a Logger writing to w
func NewLoggerTo(w io.Writer, config interface{}, name string) *Logger {
	level := LevelInfo
	if src, ok := config.(levelSource); ok {
		level = ParseLevel(src.GetLogLevel())
	}

	return &Logger{
		name:   name,
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
		exit:   os.Exit,
	}
}

// -----------------------------------------------------------------------------

// ParseLevel maps a config level name to a level; unknown names mean INFO.
func ParseLevel(name string) int {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	case "CRITICAL":
		return LevelCritical
	default:
		return LevelInfo
	}
}

// -----------------------------------------------------------------------------

// Named returns a logger for a sub-component sharing output and level
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		name:   name,
		logger: l.logger,
		level:  l.level,
		exit:   l.exit,
	}
}

// -----------------------------------------------------------------------------

func (l *Logger) write(level int, tag string, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s: %s", l.name, tag, msg)
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(LevelDebug, "DEBUG", format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.write(LevelWarning, "WARNING", format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, "INFO", format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(LevelError, "ERROR", format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] CRITICAL: %s", l.name, msg)
	l.exit(1)
}
