package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger atomic.Pointer[log.Logger]

func init() {
	baseLogger.Store(log.New(os.Stderr, "", log.Ldate|log.Ltime))
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

// SetLogOutput redirects log output, e.g. to a file while the TUI owns the
// terminal.
func SetLogOutput(w io.Writer) {
	baseLogger.Store(log.New(w, "", log.Ldate|log.Ltime))
}

// LogToFile opens (appending) a log file and redirects output to it. The
// caller owns the returned file handle.
func LogToFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetLogOutput(f)
	return f, nil
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

func logf(l LogLevel, format string, args ...any) {
	if getLevel() > l {
		return
	}
	prefix := "INFO"
	switch l {
	case LevelDebug:
		prefix = "DEBUG"
	case LevelWarn:
		prefix = "WARN"
	case LevelError:
		prefix = "ERROR"
	}
	if len(args) == 0 {
		baseLogger.Load().Printf("[%s] %s", prefix, format)
		return
	}
	baseLogger.Load().Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func Debug(format string, a ...any) { logf(LevelDebug, format, a...) }

// Info logs at info level.
func Info(format string, a ...any) { logf(LevelInfo, format, a...) }

// Warn logs at warn level.
func Warn(format string, a ...any) { logf(LevelWarn, format, a...) }

// Error logs at error level.
func Error(format string, a ...any) { logf(LevelError, format, a...) }
