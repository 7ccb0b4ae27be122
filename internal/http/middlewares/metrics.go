package middlewares

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/igneous-labs/sanctum-reserve-sdk/internal/metrics"
)

// UnmatchedRoute labels requests no route matched, keeping raw paths out of
// the label set.
const UnmatchedRoute = "unmatched"

// RouteGroup returns the first segment of a matched route, "api" for the
// quote API and the route itself for /health and /metrics.
func RouteGroup(route string) string {
	if route == UnmatchedRoute {
		return route
	}
	group, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
	return group
}

// Metrics records request counts and latency by route template. Routes in
// skip, such as the scrape endpoint, are not recorded.
func Metrics(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		skipped[route] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		if _, ok := skipped[route]; ok {
			c.Next()
			return
		}

		group := RouteGroup(route)
		metrics.HTTPInFlight.WithLabelValues(group).Inc()
		start := time.Now()

		c.Next()

		metrics.HTTPInFlight.WithLabelValues(group).Dec()
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
