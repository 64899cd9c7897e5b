package model

import (
	"time"

	"gorm.io/gorm"
)

// User 由身份服务创建，is_merchant 仅在申请商家时置为 true
type User struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:uk_users_email" json:"email"`
	Name       string    `gorm:"type:varchar(64);not null;default:''" json:"name"`
	Image      string    `gorm:"type:varchar(512);not null;default:''" json:"image"`
	IsMerchant bool      `gorm:"not null;default:false" json:"isMerchant"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	newID(&u.ID)
	return nil
}
