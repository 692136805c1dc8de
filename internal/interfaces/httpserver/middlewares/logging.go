package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"jan-server/catalog-api/internal/infrastructure/auth"
)

// LoggingMiddleware writes one access log line per request. 4xx responses are
// logged at warn and 5xx at error level.
func LoggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.IsValid() {
			event = event.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
		}
		if subject := c.GetString(auth.SubjectKey); subject != "" {
			event = event.Str("subject", subject)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("request_id", RequestIDFromContext(c)).
			Str("method", c.Request.Method).
			Str("route", routeOf(c)).
			Str("path", c.Request.URL.Path).
			Str("locale", LocaleFromContext(c)).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

// routeOf returns the matched route template, or "unmatched".
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
