package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and durations labelled by route template.
// Scrapes of metricsPath are not counted, and requests that match no route share
// one label so unknown URLs cannot grow the series set.
func Metrics(metricsSvc *service.MetricsService, metricsPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == metricsPath {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
