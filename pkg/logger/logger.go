// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger writes.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	return zapcore.ParseLevel(s)
}

// TraceIDFn extracts a trace id from the context, or "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes JSON log lines tagged with the service name and, when
// available, the trace id of the active span.
type Logger struct {
	z         *zap.SugaredLogger
	traceIDFn TraceIDFn
}

// New returns a Logger writing to w. traceIDFn may be nil.
func New(w io.Writer, minLevel Level, service string, traceIDFn TraceIDFn) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), minLevel)
	z := zap.New(core).With(zap.String("service", service))
	return &Logger{z: z.Sugar(), traceIDFn: traceIDFn}
}

// With returns a child logger that adds the key/value pairs to every line.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{z: l.z.With(args...), traceIDFn: l.traceIDFn}
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.z.Debugw(msg, l.withTrace(ctx, args)...)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.z.Infow(msg, l.withTrace(ctx, args)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.z.Warnw(msg, l.withTrace(ctx, args)...)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.z.Errorw(msg, l.withTrace(ctx, args)...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) withTrace(ctx context.Context, args []any) []any {
	if l.traceIDFn == nil {
		return args
	}
	id := l.traceIDFn(ctx)
	if id == "" {
		return args
	}
	return append([]any{"trace_id", id}, args...)
}
