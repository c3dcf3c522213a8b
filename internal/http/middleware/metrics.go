package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/observability"
)

// Metrics records request count and latency per route template. Unmatched
// paths share one "unmatched" label so scanners hitting random URLs cannot
// grow the series set. A nil collector makes it a pass-through.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "/metrics" {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		m.APIInflightInc()
		defer m.APIInflightDec()
		start := time.Now()
		c.Next()

		m.ObserveAPI(c.Request.Method, route, observability.StatusLabel(c.Writer.Status()), time.Since(start))
	}
}
