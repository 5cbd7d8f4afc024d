package middleware

import (
	"cafehub/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// fiberCarrier adapts the Fiber request headers to a TextMapCarrier.
type fiberCarrier struct {
	c *fiber.Ctx
}

func (fc fiberCarrier) Get(key string) string { return fc.c.Get(key) }

func (fc fiberCarrier) Set(key, value string) { fc.c.Request().Header.Set(key, value) }

func (fc fiberCarrier) Keys() []string {
	var keys []string
	fc.c.Request().Header.VisitAll(func(k, _ []byte) {
		keys = append(keys, string(k))
	})
	return keys
}

var _ propagation.TextMapCarrier = fiberCarrier{}

// TracingMiddleware starts a server span per request, continuing any
// incoming W3C trace context. The span is renamed to the matched route once
// the handler has run.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), fiberCarrier{c})
		ctx, span := observability.Tracer.Start(ctx, "HTTP "+c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
				attribute.String("client.address", c.IP()),
			),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Set("X-Trace-ID", traceID)
		c.SetUserContext(ctx)

		err := c.Next()

		span.SetName(c.Method() + " " + c.Route().Path)
		span.SetAttributes(
			attribute.String("http.route", c.Route().Path),
			attribute.Int("http.response.status_code", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok {
			span.SetAttributes(attribute.String("request.id", rid))
		}
		if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
			span.SetAttributes(attribute.Int64("user.id", int64(uid)))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "server error")
		}
		return err
	}
}
