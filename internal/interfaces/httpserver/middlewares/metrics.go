package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jan-server/catalog-api/internal/infrastructure/metrics"
)

// MetricsMiddleware counts requests and observes their latency per route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.RecordRequest(c.Request.Method, routeOf(c), strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
