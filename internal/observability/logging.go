// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog.Logger so packages below the HTTP layer share one sink.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the logger used by repositories and the cache package.
// The middleware package replaces it with its context-aware logger at init.
var GlobalLogger = &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stdout, nil))}

// SetGlobalLogger swaps GlobalLogger. A nil logger is ignored.
func SetGlobalLogger(l *slog.Logger) {
	if l != nil {
		GlobalLogger = &Logger{Logger: l}
	}
}

var repoLogging atomic.Bool

func init() {
	repoLogging.Store(true)
}

// SetRepoLogging turns the per-write repository log lines on or off.
// Repository errors are always logged.
func SetRepoLogging(enabled bool) {
	repoLogging.Store(enabled)
}

// RepoLogger writes one structured line per successful write to a table.
type RepoLogger struct {
	table string
}

// NewRepoLogger creates a RepoLogger for table.
func NewRepoLogger(table string) *RepoLogger {
	return &RepoLogger{table: table}
}

func (l *RepoLogger) write(ctx context.Context, op string, attrs []slog.Attr) {
	if !repoLogging.Load() {
		return
	}
	attrs = append([]slog.Attr{slog.String("table", l.table), slog.String("op", op)}, attrs...)
	GlobalLogger.LogAttrs(ctx, slog.LevelInfo, "row "+op+"d", attrs...)
}

// Created logs an insert.
func (l *RepoLogger) Created(ctx context.Context, attrs ...slog.Attr) { l.write(ctx, "create", attrs) }

// Updated logs an update.
func (l *RepoLogger) Updated(ctx context.Context, attrs ...slog.Attr) { l.write(ctx, "update", attrs) }

// Deleted logs a delete.
func (l *RepoLogger) Deleted(ctx context.Context, attrs ...slog.Attr) { l.write(ctx, "delete", attrs) }

// Failed logs a storage error for op.
func (l *RepoLogger) Failed(ctx context.Context, op string, err error) {
	GlobalLogger.LogAttrs(ctx, slog.LevelError, "repository error",
		slog.String("table", l.table),
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}
