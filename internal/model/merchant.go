package model

import (
	"time"

	"gorm.io/gorm"
)

const MaxHighlights = 8

type Merchant struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_merchants_user" json:"userId"`
	Slug          string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_merchants_slug" json:"slug"`
	DisplayName   string    `gorm:"type:varchar(64);not null" json:"displayName"`
	Category      string    `gorm:"type:varchar(64);not null;default:''" json:"category"`
	Location      string    `gorm:"type:varchar(128);not null;default:''" json:"location"`
	Description   string    `gorm:"type:varchar(1000);not null;default:''" json:"description"`
	Highlights    []string  `gorm:"type:json;serializer:json" json:"highlights"`
	AvatarColor   string    `gorm:"type:varchar(16);not null;default:'#0ea5e9'" json:"avatarColor"`
	ResponseTime  string    `gorm:"type:varchar(64);not null;default:''" json:"responseTime"`
	AverageRating float64   `gorm:"type:double;not null;default:0" json:"averageRating"`
	TotalRatings  int64     `gorm:"not null;default:0" json:"totalRatings"`
	LikesCount    int64     `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount int64     `gorm:"not null;default:0" json:"dislikesCount"`
	CreatedAt     time.Time `gorm:"index:idx_merchants_created_at" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Merchant) TableName() string {
	return "merchants"
}

func (m *Merchant) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// Ref 商家作为反应目标
func (m *Merchant) Ref() MerchantRef {
	return MerchantRef{ID: m.ID}
}
