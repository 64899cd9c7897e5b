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

// ReactionsHandler 监听 reactions 表，为商家主人或帖子作者生成点赞/点踩通知
type ReactionsHandler struct {
	merchantRepo repository.MerchantRepo
	postRepo     repository.PostRepo
	notifier     Notifier
}

func NewReactionsHandler(merchantRepo repository.MerchantRepo, postRepo repository.PostRepo, notifier Notifier) *ReactionsHandler {
	return &ReactionsHandler{
		merchantRepo: merchantRepo,
		postRepo:     postRepo,
		notifier:     notifier,
	}
}

func (s *ReactionsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("reaction consumer setup")
	return nil
}

func (s *ReactionsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("reaction consumer cleanup")
	return nil
}

func (s *ReactionsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-reaction consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-reaction process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ReactionsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "reactions")
	if err != nil {
		return err
	}

	// 取消反应不通知，改判只在类型变化时通知
	if canalMsg.Type != INSERT && canalMsg.Type != UPDATE {
		return nil
	}

	for i, row := range canalMsg.Data {
		if canalMsg.Type == UPDATE && !canalMsg.Changed(i, "type") {
			continue
		}
		if err = s.handleRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReactionsHandler) handleRow(ctx context.Context, row map[string]interface{}) error {
	senderID := StrToString(row["user_id"])
	typ, ok := model.ParseReactionType(StrToString(row["type"]))
	if !ok {
		log.WarnContext(ctx, "unknown reaction type", "type", row["type"])
		return nil
	}

	target, err := model.TargetOf(model.TargetKind(StrToString(row["target_type"])), StrToString(row["target_id"]))
	if err != nil {
		log.WarnContext(ctx, "skip reaction notification", "err", err)
		return nil
	}

	switch t := target.(type) {
	case model.MerchantRef:
		merchant, err := s.merchantRepo.GetMerchantByID(ctx, t.ID)
		if repository.IsNotFound(err) {
			log.WarnContext(ctx, "merchant not found for reaction notification", "merchantID", t.ID)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "get merchant")
		}
		return notify(ctx, s.notifier, merchant.UserID, senderID, mongo.SysBoxMerchantReaction, merchant.ID,
			reactionText(typ, "店铺"), map[string]any{
				"merchant_name": merchant.DisplayName,
				"merchant_slug": merchant.Slug,
				"reaction":      string(typ),
			})
	case model.PostRef:
		post, err := s.postRepo.GetPost(ctx, t.ID)
		if repository.IsNotFound(err) {
			log.WarnContext(ctx, "post not found for reaction notification", "postID", t.ID)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "get post")
		}
		return notify(ctx, s.notifier, post.UserID, senderID, mongo.SysBoxPostReaction, post.ID,
			reactionText(typ, "帖子"), map[string]any{
				"post_title": post.Title,
				"reaction":   string(typ),
			})
	}
	return nil
}

func reactionText(typ model.ReactionType, noun string) string {
	if typ == model.ReactionDislike {
		return "点踩了你的" + noun
	}
	return "点赞了你的" + noun
}
