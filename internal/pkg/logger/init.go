package logger

import (
	"RedBlack/internal/api/config"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
)

// InitLogger 初始化全局 slog，远程地址可用时同时写入远程日志收集端
func InitLogger(cfg config.LogConfig) {
	level := ParseLevel(cfg.Level)
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: level})

	var finalHandler log.Handler = hStdout

	if cfg.RemoteAddress != "" {
		conn, err := net.DialTimeout("tcp", cfg.RemoteAddress, 3*time.Second)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: level}).
				WithAttrs([]log.Attr{
					log.String("target_index", cfg.RemoteIndex),
					log.String("log_token", cfg.RemoteToken),
				})

			finalHandler = fanoutHandler{hStdout, tracedOnlyHandler{next: hRemote}}
		} else {
			log.Warn("Failed to connect to remote log sink, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}

// ParseLevel 将配置中的日志级别转换为 slog.Level
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
