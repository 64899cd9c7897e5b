package model

import (
	"time"

	"gorm.io/gorm"
)

// Post 曝光帖，除计数字段外创建后不再修改
type Post struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:varchar(36);not null;index:idx_posts_user" json:"userId"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Tags          []string  `gorm:"type:json;serializer:json" json:"tags"`
	LikesCount    int64     `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount int64     `gorm:"not null;default:0" json:"dislikesCount"`
	CommentsCount int64     `gorm:"not null;default:0" json:"commentsCount"`
	ViewsCount    int64     `gorm:"not null;default:0" json:"viewsCount"`
	CreatedAt     time.Time `gorm:"index:idx_posts_created_at" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// 关联关系
	User   User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Images []PostImage `gorm:"foreignKey:PostID;references:ID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

// Ref 帖子作为反应目标
func (p *Post) Ref() PostRef {
	return PostRef{ID: p.ID}
}
