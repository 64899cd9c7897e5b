package kafka

import (
	"RedBlack/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// PostIndexer 帖子搜索索引写入端，es.PostRepo 满足该接口
type PostIndexer interface {
	IndexPost(ctx context.Context, post *es.PostES, version int64) error
	DeletePost(ctx context.Context, id string) error
}

// PostsHandler 监听 posts 表，把帖子同步到搜索索引
type PostsHandler struct {
	indexer PostIndexer
}

func NewPostsHandler(indexer PostIndexer) *PostsHandler {
	return &PostsHandler{indexer: indexer}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	log.Info("topic-post consume claim end")
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case DELETE:
		for _, row := range canalMsg.Data {
			if err = s.indexer.DeletePost(ctx, StrToString(row["id"])); err != nil {
				return errors.Wrap(err, "delete post document")
			}
		}
		return nil
	case INSERT, UPDATE:
	default:
		return nil
	}

	for i, row := range canalMsg.Data {
		// 浏览量刷盘不影响检索内容
		if canalMsg.Type == UPDATE && !canalMsg.Changed(i, "title", "content", "tags", "likes_count", "dislikes_count") {
			continue
		}
		if err = s.indexer.IndexPost(ctx, toPostES(row), canalMsg.TS); err != nil {
			return errors.Wrap(err, "index post document")
		}
	}
	return nil
}

func toPostES(row map[string]interface{}) *es.PostES {
	var tags []string
	if raw := StrToString(row["tags"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			log.Warn("invalid post tags in canal message", "postID", row["id"], "err", err)
		}
	}

	return &es.PostES{
		ID:            StrToString(row["id"]),
		UserID:        StrToString(row["user_id"]),
		Title:         StrToString(row["title"]),
		Content:       StrToString(row["content"]),
		Tags:          tags,
		LikesCount:    StrToInt64(row["likes_count"]),
		DislikesCount: StrToInt64(row["dislikes_count"]),
		CreatedAt:     StrToDateTime(row["created_at"]),
	}
}
