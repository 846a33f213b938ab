package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waylog/waylog/internal/metrics"
)

// PrometheusMiddleware records per-route request counts and latency.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		// Label by route pattern, not raw path, to keep label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
