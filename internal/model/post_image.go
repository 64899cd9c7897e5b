package model

import (
	"time"

	"gorm.io/gorm"
)

type PostImage struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PostID    string    `gorm:"type:varchar(36);not null;index:idx_post_images_post" json:"postId"`
	URL       string    `gorm:"type:varchar(512);not null" json:"url"`
	SortOrder int       `gorm:"not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostImage) TableName() string {
	return "post_images"
}

func (i *PostImage) BeforeCreate(*gorm.DB) error {
	newID(&i.ID)
	return nil
}
