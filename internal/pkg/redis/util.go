package redis

import (
	"context"
	"time"
)

// TryLock 设置键值对并设置过期时间
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// HIncrBy 哈希字段自增
func HIncrBy(ctx context.Context, key, field string, incr int64) error {
	return Rdb.HIncrBy(ctx, key, field, incr).Err()
}

// HGetAll 获取整个哈希
func HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return Rdb.HGetAll(ctx, key).Result()
}

// Exists 键是否存在
func Exists(ctx context.Context, key string) (bool, error) {
	n, err := Rdb.Exists(ctx, key).Result()
	return n > 0, err
}

func Rename(ctx context.Context, oldKey string, newKey string) error {
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// Locker 基于 SETNX 的分布式锁
type Locker struct{}

func NewLocker() *Locker {
	return &Locker{}
}

// TryLock 不重试，拿不到锁直接返回 false
func (Locker) TryLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return TryLock(ctx, key, value, ttl, 1)
}

func (Locker) Unlock(ctx context.Context, key, value string) {
	UnLock(ctx, key, value)
}
