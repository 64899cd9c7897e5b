package redis

import (
	"RedBlack/internal/pkg/consts"
	"context"
	"strconv"
)

// ViewCounter 帖子浏览量先累加在 Redis 哈希中，由定时任务批量落库
type ViewCounter struct{}

func NewViewCounter() *ViewCounter {
	return &ViewCounter{}
}

func (ViewCounter) RecordView(ctx context.Context, postID string) error {
	return HIncrBy(ctx, consts.PostViewPendingKey, postID, 1)
}

// Drain 将待处理哈希改名后读出；上次未确认的批次优先返回
func (ViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	exists, err := Exists(ctx, consts.PostViewProcessingKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		pending, err := Exists(ctx, consts.PostViewPendingKey)
		if err != nil || !pending {
			return nil, err
		}
		if err = Rename(ctx, consts.PostViewPendingKey, consts.PostViewProcessingKey); err != nil {
			return nil, err
		}
	}

	raw, err := HGetAll(ctx, consts.PostViewProcessingKey)
	if err != nil {
		return nil, err
	}
	views := make(map[string]int64, len(raw))
	for postID, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		views[postID] = n
	}
	return views, nil
}

// Ack 确认批次已落库
func (ViewCounter) Ack(ctx context.Context) error {
	return DeleteKey(ctx, consts.PostViewProcessingKey)
}
