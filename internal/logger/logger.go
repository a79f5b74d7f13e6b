package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const runIDKey ctxKey = "runID"

// InitLogger installs the default logger writing to stdout
func InitLogger(cfg Config) *slog.Logger {
	return InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the default logger writing to w
func InitLoggerWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(cfg.BaseAttributes())

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// GenerateRunID creates a new id for one ingestion invocation
func GenerateRunID() string {
	return uuid.NewString()
}

// WithRunID returns a new context carrying the run id
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run id from the context, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// GetRunID returns the run id or an empty string
func GetRunID(ctx context.Context) string {
	id, _ := RunIDFromContext(ctx)
	return id
}

// FromContext returns a logger that includes the run_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := RunIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyRunID, id)
	}
	return slog.Default()
}

// Info logs on the default logger
func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}
