package middleware

import (
	"time"

	"envelope-ledger/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics labels requests by route template so ids do not explode cardinality.
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), started)
	}
}
