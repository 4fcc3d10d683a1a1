package log

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
)

const DefaultFlag = log.Ldate | log.Ltime

var defaultLogger = New(os.Stdout, "", DefaultFlag, LevelInfo)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel parses a log level string into a Level.
// Valid log levels are: error, warn, info, debug, trace.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "error":
		return LevelError, nil
	case "warn":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelError, fmt.Errorf("unknown log level: %s", level)
	}
}

type Logger struct {
	logger *log.Logger
	level  Level
}

func New(out io.Writer, prefix string, flag int, level Level) *Logger {
	return &Logger{
		logger: log.New(out, prefix, flag),
		level:  level,
	}
}

// SetDefaultLogger replaces the logger used by the package-level functions.
func SetDefaultLogger(l *Logger) {
	defaultLogger = l
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	entry := map[string]interface{}{
		"level": level.String(),
		"msg":   fmt.Sprintf(format, args...),
	}
	b, _ := json.Marshal(entry)
	l.logger.Print(string(b))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LevelTrace, format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

func Trace(format string, args ...interface{}) {
	defaultLogger.Trace(format, args...)
}
