// Package logging provides a simple leveled logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a simple leveled logger.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	closer io.Closer
	now    func() time.Time
}

// New creates a new logger.
func New(level Level) *Logger {
	return &Logger{
		level:  level,
		output: os.Stderr,
		now:    time.Now,
	}
}

// FileOptions controls log file rotation.
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileOptions returns rotation settings suitable for a
// long-running terminal session.
func DefaultFileOptions() FileOptions {
	return FileOptions{
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// NewFile creates a logger writing to a rotating file. The TUI owns the
// terminal, so interactive sessions log here instead of stderr.
func NewFile(level Level, path string, opts FileOptions) *Logger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	return &Logger{
		level:  level,
		output: lj,
		closer: lj,
		now:    time.Now,
	}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := l.now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] %s\n", timestamp, level.String(), msg)

	_, _ = l.output.Write([]byte(line))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Throttled wraps a logger so that high-frequency call sites (animation
// frames) emit at most one line per interval. The first call always logs.
type Throttled struct {
	log *Logger
	s   rate.Sometimes
}

// Throttle returns a Throttled view of l.
func (l *Logger) Throttle(interval time.Duration) *Throttled {
	return &Throttled{
		log: l,
		s:   rate.Sometimes{First: 1, Interval: interval},
	}
}

// Debug logs a debug message if the interval has elapsed.
func (t *Throttled) Debug(format string, args ...interface{}) {
	if !t.log.Enabled(LevelDebug) {
		return
	}
	t.s.Do(func() { t.log.Debug(format, args...) })
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level:  LevelError + 1, // Higher than any level
		output: io.Discard,
		now:    time.Now,
	}
}
