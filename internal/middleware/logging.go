// Package middleware provides request-scoped Fiber middleware: logging, tracing, metrics and rate limiting.
package middleware

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"cafehub/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Logger is the process-wide structured logger.
var Logger *slog.Logger

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	TraceIDKey   contextKey = "trace_id"
)

var contextAttrs = []contextKey{RequestIDKey, UserIDKey, TraceIDKey}

// ctxHandler copies request-scoped values from the context onto every record.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range contextAttrs {
		if v := ctx.Value(key); v != nil {
			r.AddAttrs(slog.Any(string(key), v))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

// NewLogger returns a context-aware logger writing JSON in production and
// text everywhere else.
func NewLogger(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "test" {
		opts.Level = slog.LevelWarn
	}

	var handler slog.Handler
	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ctxHandler{handler})
}

// SetLogger replaces the middleware and repository loggers.
func SetLogger(l *slog.Logger) {
	Logger = l
	observability.SetGlobalLogger(l)
}

func init() {
	SetLogger(NewLogger(os.Getenv("APP_ENV"), os.Stdout))
}

// RequestContext copies the request and trace ids from Fiber locals into the
// request context. It must run after requestid and TracingMiddleware.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ctx = context.WithValue(ctx, RequestIDKey, rid)
		}
		if tid, ok := c.Locals("traceID").(string); ok && tid != "" {
			ctx = context.WithValue(ctx, TraceIDKey, tid)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// AccessLog logs one line per request. Paths starting with any of skip are
// not logged. 5xx responses log at error level and 4xx at warn.
func AccessLog(skip ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range skip {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil && status < fiber.StatusBadRequest {
			status = fiber.StatusInternalServerError
		}

		attrs := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", path),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		level := slog.LevelInfo
		switch {
		case status >= fiber.StatusInternalServerError:
			level = slog.LevelError
		case status >= fiber.StatusBadRequest:
			level = slog.LevelWarn
		}
		Logger.Log(c.UserContext(), level, "request", attrs...)
		return err
	}
}
