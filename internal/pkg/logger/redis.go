package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const slowRedisThreshold = 100 * time.Millisecond

// RedisLoggerHook go-redis 命令日志
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

// DialHook 记录建立连接失败
func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "redis dial failed",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

// ProcessHook 记录命令错误与慢命令，redis.Nil 属于正常的未命中
func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		latency := time.Since(start)

		switch {
		case err != nil && !ignorableRedisErr(cmd, err):
			log.ErrorContext(ctx, "redis command failed", append(redisAttrs(cmd, latency), log.Any("err", err))...)
		case err == nil && latency > slowRedisThreshold:
			log.WarnContext(ctx, "redis command slow", redisAttrs(cmd, latency)...)
		}
		return err
	}
}

func redisAttrs(cmd redis.Cmder, latency time.Duration) []any {
	args := "[PROTECTED]"
	if name := cmd.Name(); name != "auth" && name != "hello" {
		args = fmt.Sprint(cmd.Args())
	}
	return []any{
		log.String("command", cmd.FullName()),
		log.String("args", args),
		log.Duration("latency", latency),
	}
}

// 旧版本服务端不认识 CLIENT SETINFO
func ignorableRedisErr(cmd redis.Cmder, err error) bool {
	return errors.Is(err, redis.Nil) ||
		(cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo"))
}

// ProcessPipelineHook 记录管道命令错误
func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "redis pipeline failed",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return err
	}
}
