package kafka

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second

	retryBase = 100 * time.Millisecond
	retryMax  = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// errSkipMessage 格式错误、非目标表或 DDL，直接视为已处理
var errSkipMessage = errors.New("skip message")

// pullMessageBatch 攒满 batchSize 或等满 batchTimeout 后处理一批
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	flush := func() {
		if len(batch) > 0 {
			processBatch(session, batch, logic)
			batch = make([]*sarama.ConsumerMessage, 0, batchSize)
		}
	}

	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，全部成功后提交最后一条的位点
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	ctx := session.Context()

	var g errgroup.Group
	for _, msg := range messages {
		g.Go(func() error {
			return handleWithRetry(ctx, msg, logic)
		})
	}
	// 会话中途结束，未完成的消息留给 rebalance 后重新消费
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		return
	}

	if n := len(messages); n > 0 {
		session.MarkMessage(messages[n-1], "")
		session.Commit()
	}
}

// handleWithRetry 业务失败时指数退避重试，直到成功、可跳过或会话结束
func handleWithRetry(ctx context.Context, msg *sarama.ConsumerMessage, logic LogicFunc) error {
	wait := retryBase
	for {
		err := logic(ctx, msg)
		if err == nil || errors.Is(err, errSkipMessage) {
			return nil
		}
		log.ErrorContext(ctx, "process message error",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, retryMax)
	}
}

// ToCanalMessage 解析 Canal 行变更，只保留目标表的 DML 事件
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		log.Error("unmarshal canal message error", "topic", msg.Topic, "offset", msg.Offset, "err", err)
		return nil, errSkipMessage
	}
	if canalMsg.Table != tableName || canalMsg.IsDDL || len(canalMsg.Data) == 0 {
		return nil, errSkipMessage
	}
	return &canalMsg, nil
}
