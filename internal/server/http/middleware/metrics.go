package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/umaru-jpg/luvyn/internal/metrics"
)

// RequestMetrics counts handled requests by route template.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
