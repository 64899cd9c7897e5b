package kafka

import (
	"RedBlack/internal/pkg/mongo"
	"RedBlack/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// RatingsHandler 监听 merchant_ratings 表，新评价或评价修改时通知商家
type RatingsHandler struct {
	merchantRepo repository.MerchantRepo
	notifier     Notifier
}

func NewRatingsHandler(merchantRepo repository.MerchantRepo, notifier Notifier) *RatingsHandler {
	return &RatingsHandler{
		merchantRepo: merchantRepo,
		notifier:     notifier,
	}
}

func (s *RatingsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("rating consumer setup")
	return nil
}

func (s *RatingsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("rating consumer cleanup")
	return nil
}

func (s *RatingsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-rating consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-rating process batch error", "err", err)
		return err
	}
	return nil
}

func (s *RatingsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "merchant_ratings")
	if err != nil {
		return err
	}

	if canalMsg.Type != INSERT && canalMsg.Type != UPDATE {
		return nil
	}

	updated := canalMsg.Type == UPDATE
	for i, row := range canalMsg.Data {
		if updated && !canalMsg.Changed(i, "rating", "comment") {
			continue
		}
		if err = s.handleRow(ctx, row, updated); err != nil {
			return err
		}
	}
	return nil
}

func (s *RatingsHandler) handleRow(ctx context.Context, row map[string]interface{}, updated bool) error {
	merchantID := StrToString(row["merchant_id"])
	merchant, err := s.merchantRepo.GetMerchantByID(ctx, merchantID)
	if repository.IsNotFound(err) {
		log.WarnContext(ctx, "merchant not found for rating notification", "merchantID", merchantID)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "get merchant")
	}

	rating := StrToFloat(row["rating"])
	comment := StrToString(row["comment"])
	content := comment
	if content == "" {
		content = fmt.Sprintf("给你的店铺打了 %s 分", strconv.FormatFloat(rating, 'f', 1, 64))
	}

	return notify(ctx, s.notifier, merchant.UserID, StrToString(row["user_id"]), mongo.SysBoxMerchantRating, merchant.ID,
		preview(content), map[string]any{
			"merchant_name": merchant.DisplayName,
			"merchant_slug": merchant.Slug,
			"rating":        rating,
			"updated":       updated,
		})
}
