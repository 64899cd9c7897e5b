package job

import (
	"RedBlack/internal/pkg/consts"
	"RedBlack/internal/pkg/logger"
	"RedBlack/internal/repository"
	"RedBlack/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const viewFlushLockTTL = 25 * time.Second

// ViewDrainer 浏览量缓冲区，取出一批后必须 Ack 才会被清除
type ViewDrainer interface {
	Drain(ctx context.Context) (map[string]int64, error)
	Ack(ctx context.Context) error
}

// PostViewFlushJob 把 Redis 中累积的浏览量合并写入 posts.views_count
type PostViewFlushJob struct {
	views     ViewDrainer
	txManager repository.TxManager
	locker    service.Locker
}

func NewPostViewFlushJob(views ViewDrainer, txManager repository.TxManager, locker service.Locker) *PostViewFlushJob {
	return &PostViewFlushJob{
		views:     views,
		txManager: txManager,
		locker:    locker,
	}
}

func (s *PostViewFlushJob) Run() {
	traceID := "job-view-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)
	if _, err := s.Flush(ctx); err != nil {
		log.ErrorContext(ctx, "flush post views error", "err", err)
	}
}

// Flush 执行一次落库，返回写入的帖子数
func (s *PostViewFlushJob) Flush(ctx context.Context) (int, error) {
	if s.locker != nil {
		lockValue := uuid.NewString()
		ok, err := s.locker.TryLock(ctx, consts.ViewFlushLock, lockValue, viewFlushLockTTL)
		if err != nil {
			return 0, err
		}
		if !ok {
			log.InfoContext(ctx, "view flush is running on another instance, skip")
			return 0, nil
		}
		defer s.locker.Unlock(ctx, consts.ViewFlushLock, lockValue)
	}

	views, err := s.views.Drain(ctx)
	if err != nil {
		return 0, err
	}
	if len(views) == 0 {
		return 0, nil
	}

	// 整批一个事务，失败时不 Ack，下次重放同一批
	err = s.txManager.Execute(ctx, func(r *repository.Repos) error {
		for postID, n := range views {
			if err := r.Posts.IncrCounter(ctx, postID, "views_count", n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err = s.views.Ack(ctx); err != nil {
		return 0, err
	}

	log.InfoContext(ctx, "flush post views success", "post_count", len(views))
	return len(views), nil
}
