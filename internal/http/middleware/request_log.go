package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/ctxutil"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

// Probe routes log at debug so liveness checks do not drown real traffic.
var quietRoutes = map[string]bool{
	"/":            true,
	"/healthcheck": true,
	"/metrics":     true,
}

// RequestLogger writes one line per request. The tenant id from the route is
// included; the logger hashes it.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	reqLog := log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := c.Request.Context()

		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		if td := ctxutil.GetTraceData(ctx); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if clientID := c.Param("client_id"); clientID != "" {
			fields = append(fields, "client_id", clientID)
		}
		if admin := ctxutil.GetAdmin(ctx); admin != "" {
			fields = append(fields, "admin", admin)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			reqLog.Error("request failed", fields...)
		case status >= 400:
			reqLog.Warn("request rejected", fields...)
		case quietRoutes[route]:
			reqLog.Debug("request", fields...)
		default:
			reqLog.Info("request", fields...)
		}
	}
}
