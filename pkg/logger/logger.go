// Package logger обертка над zap. Логи консоли пишутся в stderr, stdout
// остается за выводом команд.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field поле структурированного лога
type Field struct {
	zap.Field
}

type zapLogger struct {
	z *zap.Logger
}

// NewLogger логгер в stderr. environment "dev" включает консольный формат,
// остальные окружения пишут JSON. Неизвестный уровень понижается до info.
func NewLogger(environment, level, component string) (Logger, error) {
	return NewLoggerWithWriter(environment, level, component, os.Stderr)
}

func NewLoggerWithWriter(environment, level, component string, w io.Writer) (Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if environment == "dev" {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "time"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeDuration = zapcore.MillisDurationEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("component", component), zap.String("environment", environment))

	return &zapLogger{z: z}, nil
}

// NewNop логгер без вывода
func NewNop() Logger {
	return &zapLogger{z: zap.NewNop()}
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = f.Field
	}
	return out
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, toZap(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, toZap(fields)...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, toZap(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, toZap(fields)...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{z: l.z.With(toZap(fields)...)}
}

func (l *zapLogger) Sync() error {
	return l.z.Sync()
}

type requestIDKey struct{}

// WithRequestID сохраняет идентификатор запроса, он же уходит в X-Request-ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// CtxField поле request_id, "unknown" если идентификатора нет
func CtxField(ctx context.Context) Field {
	id := RequestID(ctx)
	if id == "" {
		id = "unknown"
	}
	return String("request_id", id)
}

func String(key, val string) Field { return Field{zap.String(key, val)} }

func Int(key string, val int) Field { return Field{zap.Int(key, val)} }

func Float64(key string, val float64) Field { return Field{zap.Float64(key, val)} }

func Bool(key string, val bool) Field { return Field{zap.Bool(key, val)} }

func Duration(key string, val time.Duration) Field { return Field{zap.Duration(key, val)} }

func Any(key string, val any) Field { return Field{zap.Any(key, val)} }

// Error поле error; для nil пишется "nil"
func Error(err error) Field {
	if err == nil {
		return Field{zap.String("error", "nil")}
	}
	return Field{zap.String("error", err.Error())}
}
