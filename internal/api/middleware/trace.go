package middleware

import (
	"RedBlack/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	traceHeader   = "X-Trace-ID"
	requestHeader = "X-Request-ID"
	maxTraceIDLen = 64
)

// TraceMiddleware 沿用上游的 Trace ID，缺失或过长时重新生成
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = c.GetHeader(requestHeader)
		}
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Header(traceHeader, traceID)

		c.Next()
	}
}
