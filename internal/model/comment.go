package model

import (
	"time"

	"gorm.io/gorm"
)

const MaxCommentLength = 1000

// Comment 创建后不可修改
type Comment struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string     `gorm:"type:varchar(36);not null" json:"userId"`
	TargetType    TargetKind `gorm:"type:varchar(16);not null;index:idx_comments_target,priority:1" json:"targetType"`
	TargetID      string     `gorm:"type:varchar(36);not null;index:idx_comments_target,priority:2" json:"targetId"`
	Content       string     `gorm:"type:varchar(1000);not null" json:"content"`
	LikesCount    int64      `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount int64      `gorm:"not null;default:0" json:"dislikesCount"`
	CreatedAt     time.Time  `gorm:"index:idx_comments_created_at" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	newID(&c.ID)
	return nil
}

// NewPostComment 评论目前只挂载在帖子上
func NewPostComment(userID string, post PostRef, content string) *Comment {
	return &Comment{
		UserID:     userID,
		TargetType: post.Kind(),
		TargetID:   post.TargetID(),
		Content:    content,
	}
}
