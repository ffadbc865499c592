package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"profile-api.backend/pkg/logger"
)

// quietRoutes are polled by probes and scrapers.
var quietRoutes = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// LoggerMiddleware writes one structured entry per request once the handler chain is done.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}
		route := c.FullPath()

		entry := logger.RequestEntry{
			Method:   c.Request.Method,
			Path:     path,
			Route:    route,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			Bytes:    c.Writer.Size(),
			ClientIP: c.ClientIP(),
			Quiet:    quietRoutes[route],
		}
		if username, ok := c.Get(UsernameKey); ok {
			entry.User, _ = username.(string)
		}
		logger.LogRequest(c.Request.Context(), entry)
	}
}
