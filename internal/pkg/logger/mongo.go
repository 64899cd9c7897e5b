package logger

import (
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

const (
	slowMongoThreshold = 200 * time.Millisecond
	mongoCmdLogLimit   = 1000
)

// 握手与心跳命令不记录
var quietMongoCommands = map[string]bool{
	"hello":       true,
	"isMaster":    true,
	"ismaster":    true,
	"ping":        true,
	"endSessions": true,
}

// NewMongoMonitor 通知收件箱的命令监控，慢命令与失败命令单独记录
func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			if quietMongoCommands[evt.CommandName] {
				return
			}
			log.DebugContext(ctx, "mongo command",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.Int64("request_id", evt.RequestID),
				log.String("detail", truncate(evt.Command.String(), mongoCmdLogLimit)),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if evt.Duration <= slowMongoThreshold || quietMongoCommands[evt.CommandName] {
				return
			}
			log.WarnContext(ctx, "mongo command slow",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
			)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "mongo command failed",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
				log.Any("err", evt.Failure),
			)
		},
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...[truncated]"
}
