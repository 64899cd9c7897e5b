package redis

import (
	"RedBlack/internal/api/config"
	"RedBlack/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const pingTimeout = 3 * time.Second

// Rdb 浏览计数、申请锁与 Token 黑名单共用的客户端
var Rdb *redis.Client

// InitRedis 建立连接并探活，失败时释放连接池
func InitRedis(cfg config.RedisConfig) error {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	rdb := redis.NewClient(opts)
	rdb.AddHook(logger.NewRedisLogger())

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	Rdb = rdb
	log.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return nil
}

// Close 退出时调用
func Close() {
	if Rdb == nil {
		return
	}
	if err := Rdb.Close(); err != nil {
		log.Warn("redis close failed", "err", err)
	}
}
