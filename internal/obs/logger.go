package obs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Info:
		return zapcore.InfoLevel
	case Warn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Logger is a minimal logging interface for observability.
type Logger interface {
	Logf(level Level, format string, args ...interface{})
}

// NopLogger discards all logs.
type NopLogger struct{}

func (NopLogger) Logf(level Level, format string, args ...interface{}) {}

// ZapLogger adapts a zap logger. Fields attached to L with With are kept
// on every line.
type ZapLogger struct {
	L *zap.Logger
}

// NewZapLogger wraps l, returning a NopLogger when l is nil.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return ZapLogger{L: l}
}

func (z ZapLogger) Logf(level Level, format string, args ...interface{}) {
	if z.L == nil {
		return
	}
	lvl := level.zapLevel()
	if !z.L.Core().Enabled(lvl) {
		return
	}
	z.L.WithOptions(zap.AddCallerSkip(1)).Sugar().Logf(lvl, format, args...)
}
