// Package log provides structured logging for registrar.
// It writes leveled, categorized entries to a log file and republishes each
// entry on a pub/sub broker so interactive front-ends can tail the log.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"registrar/internal/pubsub"
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

// Category groups related log messages.
type Category string

const (
	CatRegistry Category = "registry" // Enrollment registry operations
	CatStore    Category = "store"    // Persistence load/save
	CatAuth     Category = "auth"     // Authentication
	CatConfig   Category = "config"   // Configuration loading/saving
	CatSched    Category = "sched"    // Schedule parsing and rendering
	CatCache    Category = "cache"    // Cache operations
	CatWatch    Category = "watch"    // Data directory watcher
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	globalMu      sync.Mutex
	defaultLogger *Logger
)

// Init installs the global logger, replacing and closing any previous one.
// The returned cleanup closes the log file and detaches the logger; it is
// idempotent, and a later entry after cleanup is silently dropped rather
// than written to a closed file.
func Init(path string) (func(), error) {
	logger, err := newLogger(path)
	if err != nil {
		return nil, err
	}

	globalMu.Lock()
	prev := defaultLogger
	defaultLogger = logger
	globalMu.Unlock()
	if prev != nil {
		prev.close()
	}

	return func() {
		globalMu.Lock()
		if defaultLogger == logger {
			defaultLogger = nil
		}
		globalMu.Unlock()
		logger.close()
	}, nil
}

// active returns the installed logger, or nil when logging is not set up.
func active() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return defaultLogger
}

// close releases the log file. Safe to call more than once.
func (l *Logger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
		l.writer = nil
	}
}

func newLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled log path
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := active(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := active(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := active()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2026-08-30T10:45:00 [ERROR] [store] message key=value
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if l.writer != nil {
		_, _ = l.writer.Write([]byte(entry))
	}

	if l.broker != nil {
		l.broker.Publish(pubsub.CreatedEvent, entry)
	}
}

// Listen subscribes to log entries as they are written.
// Returns nil if the logger has not been initialized.
func Listen(ctx context.Context) <-chan pubsub.Event[string] {
	l := active()
	if l == nil || l.broker == nil {
		return nil
	}
	return l.broker.Subscribe(ctx)
}
