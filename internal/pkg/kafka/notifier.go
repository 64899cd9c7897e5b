package kafka

import (
	"RedBlack/internal/pkg/mongo"
	"context"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const previewRunes = 60

// Notifier 站内通知写入端，mongo.SysBoxRepo 满足该接口
type Notifier interface {
	CreateNotification(ctx context.Context, msg *mongo.SysBoxModel) error
}

// notify 组装并写入一条未读通知，发送者与接收者相同时跳过
func notify(ctx context.Context, n Notifier, receiverID, senderID string, typ int8, targetID, content string, payload map[string]any) error {
	if receiverID == "" || receiverID == senderID {
		return nil
	}
	err := n.CreateNotification(ctx, &mongo.SysBoxModel{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Type:       typ,
		TargetID:   targetID,
		Content:    content,
		Payload:    payload,
		IsRead:     false,
		CreatedAt:  time.Now(),
	})
	return errors.Wrapf(err, "create notification type=%d target=%s", typ, targetID)
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes]) + "…"
}
