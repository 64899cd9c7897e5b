package dto

// SysBoxDTO 系统通知返回对象
type SysBoxDTO struct {
	ID         string         `json:"id"`
	SenderID   string         `json:"senderId"`
	SenderName string         `json:"senderName"`
	AvatarURL  string         `json:"avatarUrl"`
	Type       int8           `json:"type"`     // 1-商家反应, 2-帖子反应, 3-评分, 4-评论
	TargetID   string         `json:"targetId"` // 商家ID或帖子ID
	Content    string         `json:"content"`  // 预览内容
	Payload    map[string]any `json:"payload"`  // 扩展字段
	IsRead     bool           `json:"isRead"`
	CreatedAt  string         `json:"createdAt"`
}

// SysBoxUnreadDTO 未读数返回
type SysBoxUnreadDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}

type SysBoxReadDTO struct {
	ID string `json:"id" binding:"required"`
}
