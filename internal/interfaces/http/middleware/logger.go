package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"mercato.backend/pkg/logger"
)

// LoggerMiddleware writes one access-log line per request, tagged with the matched route
// template. Paths listed in skip are served silently.
func LoggerMiddleware(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]bool, len(skip))
	for _, p := range skip {
		skipped[p] = true
	}

	return func(c *gin.Context) {
		if skipped[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		// c carries request_id and user_id as gin keys
		logger.LogRequest(c, c.Request.Method, route, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
