package logger

import (
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 注册 panic 恢复与访问日志，二者都走 slog 以便带上 trace_id
func SetupGin(r *gin.Engine) {
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			log.String("path", c.Request.URL.Path),
			log.Any("panic", recovered),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(accessLog())
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.Int("status", status),
			log.Duration("latency", time.Since(start)),
			log.String("client_ip", c.ClientIP()),
			log.Int("size", c.Writer.Size()),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, log.String("route", route))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, log.String("errors", c.Errors.String()))
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.ErrorContext(ctx, "GIN_ACCESS", attrs...)
		case status >= http.StatusBadRequest:
			log.WarnContext(ctx, "GIN_ACCESS", attrs...)
		default:
			log.InfoContext(ctx, "GIN_ACCESS", attrs...)
		}
	}
}
