package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-api/internal/service"
)

// UnmatchedRoute labels requests that hit no registered route, so arbitrary paths never
// become metric series.
const UnmatchedRoute = "unmatched"

// Metrics records request duration and count per route and surface.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, requestSurface(c), c.Writer.Status(), time.Since(start))
	}
}

// requestSurface reports which part of the API served the request, read from what the
// route's middleware left on the context.
func requestSurface(c *gin.Context) string {
	if _, ok := c.Get(ContextSessionKey); ok {
		return service.SurfaceBooking
	}
	if _, ok := c.Get(ContextUserKey); ok {
		return service.SurfaceAdmin
	}
	return service.SurfacePublic
}
