package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/movies-backend/internal/observability"
)

// Metrics records request counts and latency. Stream routes only move the
// inflight gauge; their duration is the client's session length.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		start := time.Now()
		c.Next()

		if strings.HasSuffix(route, "/stream") {
			return
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
