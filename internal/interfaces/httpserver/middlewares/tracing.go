package middlewares

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware starts a server span per request, continuing any trace
// propagated by the caller. Spans are named after the route template.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	tracer := otel.Tracer(serviceName)
	propagator := otel.GetTextMapPropagator

	return func(c *gin.Context) {
		ctx := propagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		route := routeOf(c)

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethod(c.Request.Method),
				semconv.HTTPRoute(route),
				semconv.UserAgentOriginal(c.Request.UserAgent()),
				attribute.String("request.id", RequestIDFromContext(c)),
			),
		)
		defer span.End()

		if id := c.Param("id"); id != "" {
			span.SetAttributes(attribute.String("catalog.resource_id", id))
		}
		if kind := c.Param("kind"); kind != "" {
			span.SetAttributes(attribute.String("catalog.kind", kind))
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPStatusCode(status))
		if status < 500 {
			return
		}
		span.SetStatus(codes.Error, c.Errors.String())
		if err := c.Errors.Last(); err != nil {
			span.RecordError(err)
		}
	}
}
