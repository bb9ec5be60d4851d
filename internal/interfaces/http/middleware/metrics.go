package middleware

import (
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template. Unmatched
// paths share one label so scanners cannot explode the series count.
func Metrics(m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := m.RequestStarted()
		c.Next()
		done(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
