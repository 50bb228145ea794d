// Package logger provides structured leveled logging for the annotation
// engine and its CLI hosts.
package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed scanner/builder diagnostics.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages, e.g. a recovered no-progress iteration.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
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

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an integer field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Bool creates a boolean field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates an error field.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with any value.
func Any(key string, value interface{}) Field { return Field{Key: key, Value: value} }

// Logger defines the logging interface used throughout the engine.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	// With returns a child logger that prepends fields to every call,
	// used to tag all log lines emitted during one builder run.
	With(fields ...Field) Logger
	SetLevel(level Level)
	Close() error
}

// Config holds the configuration for the logger.
type Config struct {
	// LogFilePath is the path to the log file. Empty disables file output.
	LogFilePath string
	Level       Level
	// EnableConsole enables output to stderr in addition to the file.
	EnableConsole bool
}

// DefaultConfig returns a console-only configuration, appropriate for a
// one-shot CLI run that has no long-lived log file to rotate.
func DefaultConfig() *Config {
	return &Config{Level: LevelInfo, EnableConsole: true}
}

type writerLogger struct {
	mu         sync.Mutex
	level      Level
	file       *os.File
	writers    []io.Writer
	timeFormat string
	prefix     []Field
}

// New creates a Logger from the given configuration.
func New(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	l := &writerLogger{level: config.Level, timeFormat: "2006-01-02T15:04:05.000Z07:00"}

	if config.LogFilePath != "" {
		f, err := os.OpenFile(config.LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		l.writers = append(l.writers, f)
	}

	if config.EnableConsole || l.file == nil {
		l.writers = append(l.writers, os.Stderr)
	}

	return l, nil
}

func (l *writerLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, nil, fields...) }
func (l *writerLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, nil, fields...) }
func (l *writerLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, nil, fields...) }
func (l *writerLogger) Error(msg string, err error, fields ...Field) {
	l.log(LevelError, msg, err, fields...)
}

func (l *writerLogger) With(fields ...Field) Logger {
	child := &writerLogger{
		level:      l.level,
		file:       l.file,
		writers:    l.writers,
		timeFormat: l.timeFormat,
		prefix:     append(append([]Field{}, l.prefix...), fields...),
	}
	return child
}

func (l *writerLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *writerLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *writerLogger) log(level Level, msg string, err error, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	entry := l.formatEntry(level, msg, err, fields...)
	for _, w := range l.writers {
		_, _ = w.Write([]byte(entry))
	}
}

func (l *writerLogger) formatEntry(level Level, msg string, err error, fields ...Field) string {
	var sb strings.Builder
	sb.WriteString(time.Now().Format(l.timeFormat))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	sb.WriteString(msg)

	if err != nil {
		sb.WriteString(" error=\"")
		sb.WriteString(err.Error())
		sb.WriteString("\"")
	}

	for _, f := range append(append([]Field{}, l.prefix...), fields...) {
		sb.WriteString(" ")
		sb.WriteString(f.Key)
		sb.WriteString("=")
		sb.WriteString(fmt.Sprintf("%v", f.Value))
	}

	if level == LevelError {
		sb.WriteString("\n")
		sb.WriteString(stackTrace())
	}

	sb.WriteString("\n")
	return sb.String()
}

func stackTrace() string {
	var sb strings.Builder
	sb.WriteString("stack trace:\n")

	const skip = 4
	for i := skip; i-skip <= 10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		funcName := "unknown"
		if fn != nil {
			funcName = fn.Name()
		}

		if strings.Contains(funcName, "runtime.") || strings.Contains(funcName, "testing.") {
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s:%d %s\n", file, line, funcName))
	}

	return sb.String()
}

// Global logger instance, mirroring the package-level convenience
// functions used throughout the engine's CLI entry points.
var (
	global   Logger
	globalMu sync.RWMutex
)

// Init installs the global logger.
func Init(config *Config) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	l, err := New(config)
	if err != nil {
		return err
	}
	if global != nil {
		_ = global.Close()
	}
	global = l
	return nil
}

// Get returns the global logger, installing a console-only default if
// Init was never called.
func Get() Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global, _ = New(DefaultConfig())
	}
	return global
}

func Debug(msg string, fields ...Field)            { Get().Debug(msg, fields...) }
func Info(msg string, fields ...Field)             { Get().Info(msg, fields...) }
func Warn(msg string, fields ...Field)             { Get().Warn(msg, fields...) }
func Error(msg string, err error, fields ...Field) { Get().Error(msg, err, fields...) }
