// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the
// per-request logger injected by the logging middleware, so every log
// line from a handler carries the request ID:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("pickup accepted", "pickup_id", id)
//	// → time=... level=INFO msg="pickup accepted" request_id=a1b2c3d4 pickup_id=7
//
// When MONGO_LOG_URI is configured, records are additionally fanned out
// to a MongoDB collection through the asynchronous MongoHandler.
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/ecotrackhq/ecotrack/config"
)

var L *slog.Logger

// mongoSink holds the Mongo handler when one is active, so Shutdown can
// flush it.
var mongoSink *MongoHandler

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	if uri := config.Get("MONGO_LOG_URI", ""); uri != "" {
		db := config.Get("MONGO_LOG_DB", "ecotrack")
		col := config.Get("MONGO_LOG_COLLECTION", "logs")
		if mh, err := NewMongoHandler(uri, db, col); err == nil {
			mongoSink = mh
			handler = NewMultiHandler(handler, mh)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by the logging
// middleware, pre-tagged with the request ID. If none is present the
// base logger is returned unchanged.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware, not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Shutdown flushes the Mongo sink if one is active. Safe to call when
// no sink is configured.
func Shutdown() {
	if mongoSink != nil {
		mongoSink.Close()
	}
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
