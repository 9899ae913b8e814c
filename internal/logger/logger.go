// Package logger provides the small leveled logger shared by the stores and
// the plan engine. Persistence failures are logged here rather than surfaced
// to callers.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls verbosity.
type Level int

const (
	// LevelQuiet suppresses everything below errors.
	LevelQuiet Level = iota
	// LevelInfo enables info, warn and error output.
	LevelInfo
	// LevelDebug enables all output.
	LevelDebug
)

// ParseLevel maps a config string to a Level. Unknown values fall back to
// info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "off":
		return LevelQuiet
	case "debug", "verbose":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger. Safe for concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// New creates a logger writing to out at the given level. A nil out writes
// to stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(out, "", log.Ltime),
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(LevelQuiet, io.Discard)
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) printf(min Level, tag, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= min {
		l.out.Output(3, tag+" "+fmt.Sprintf(format, args...))
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...any) {
	l.printf(LevelDebug, "DEBUG", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.printf(LevelInfo, "INFO", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.printf(LevelInfo, "WARN", format, args...)
}

// Error logs at error level. Errors are always emitted.
func (l *Logger) Error(format string, args ...any) {
	l.printf(LevelQuiet, "ERROR", format, args...)
}
