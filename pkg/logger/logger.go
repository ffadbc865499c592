package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
	atom zap.AtomicLevel

	buildLogger = func(cfg zap.Config) (*zap.Logger, error) {
		return cfg.Build(zap.AddCallerSkip(1))
	}
)

type ContextKey string

// RequestIDKey is the context key RequestIDMiddleware stores the request id under.
const RequestIDKey ContextKey = "request_id"

// Init initializes the logger. Any env other than "production" gets the development encoder.
func Init(env string) {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env != "production" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		if env == "test" {
			config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}

		var err error
		log, err = buildLogger(config)
		if err != nil {
			panic(err)
		}
		atom = config.Level
	})
}

// GetLogger returns the underlying zap logger, falling back to a no-op logger before Init.
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// SetLevel changes the minimum enabled level at runtime.
func SetLevel(level zapcore.Level) {
	if log != nil {
		atom.SetLevel(level)
	}
}

// Sync flushes buffered entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// WithContext adds the request id carried by ctx to the logger
func WithContext(ctx context.Context) *zap.Logger {
	base := GetLogger()
	if ctx == nil {
		return base
	}
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		return base.With(zap.String("request_id", reqID))
	}
	return base
}

// Info logs a message at InfoLevel
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// RequestEntry is one served HTTP request.
type RequestEntry struct {
	Method   string
	Path     string
	Route    string
	Status   int
	Latency  time.Duration
	Bytes    int
	ClientIP string
	User     string
	// Quiet entries drop to DebugLevel unless they failed.
	Quiet bool
}

// LogRequest logs e at a level that follows its status.
func LogRequest(ctx context.Context, e RequestEntry) {
	fields := []zap.Field{
		zap.String("method", e.Method),
		zap.String("path", e.Path),
		zap.Int("status", e.Status),
		zap.Duration("latency", e.Latency),
		zap.Int("bytes", e.Bytes),
		zap.String("client_ip", e.ClientIP),
	}
	if e.Route != "" {
		fields = append(fields, zap.String("route", e.Route))
	}
	if e.User != "" {
		fields = append(fields, zap.String("user", e.User))
	}

	l := WithContext(ctx)
	switch {
	case e.Status >= 500:
		l.Error("HTTP Request", fields...)
	case e.Status >= 400:
		l.Warn("HTTP Request", fields...)
	case e.Quiet:
		l.Debug("HTTP Request", fields...)
	default:
		l.Info("HTTP Request", fields...)
	}
}
