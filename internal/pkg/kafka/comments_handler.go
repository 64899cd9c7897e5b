package kafka

import (
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/mongo"
	"RedBlack/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// CommentsHandler 监听 comments 表，新评论通知帖子作者
type CommentsHandler struct {
	postRepo repository.PostRepo
	notifier Notifier
}

func NewCommentsHandler(postRepo repository.PostRepo, notifier Notifier) *CommentsHandler {
	return &CommentsHandler{
		postRepo: postRepo,
		notifier: notifier,
	}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}
	if canalMsg.Type != INSERT {
		return nil
	}

	for _, row := range canalMsg.Data {
		if model.TargetKind(StrToString(row["target_type"])) != model.TargetPost {
			continue
		}
		if err = s.handleRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *CommentsHandler) handleRow(ctx context.Context, row map[string]interface{}) error {
	postID := StrToString(row["target_id"])
	post, err := s.postRepo.GetPost(ctx, postID)
	if repository.IsNotFound(err) {
		log.WarnContext(ctx, "post not found for comment notification", "postID", postID)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "get post")
	}

	return notify(ctx, s.notifier, post.UserID, StrToString(row["user_id"]), mongo.SysBoxPostComment, post.ID,
		preview(StrToString(row["content"])), map[string]any{
			"post_title": post.Title,
			"comment_id": StrToString(row["id"]),
		})
}
