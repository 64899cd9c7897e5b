package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型
const (
	SysBoxMerchantReaction int8 = 1
	SysBoxPostReaction     int8 = 2
	SysBoxMerchantRating   int8 = 3
	SysBoxPostComment      int8 = 4
)

// SysBoxModel 系统通知模型
type SysBoxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"` // 消息接收者ID
	SenderID   string             `bson:"sender_id" json:"senderId"`     // 动作发起者ID (系统通知为空)
	Type       int8               `bson:"type" json:"type"`              // 通知类型，见 SysBox* 常量
	TargetID   string             `bson:"target_id" json:"targetId"`     // 关联的商家ID或帖子ID
	Content    string             `bson:"content" json:"content"`        // 通知文案预览或评论片段
	Payload    map[string]any     `bson:"payload" json:"payload"`        // 额外元数据 (可选，如帖子标题快照)
	IsRead     bool               `bson:"is_read" json:"isRead"`         // 是否已读
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`   // 创建时间
}
