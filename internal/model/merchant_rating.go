package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

// MerchantRating 每个 (merchant, user) 至多一条，重复提交时覆盖
type MerchantRating struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MerchantID    string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_ratings_merchant_user,priority:1" json:"merchantId"`
	UserID        string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_ratings_merchant_user,priority:2" json:"userId"`
	Rating        float64   `gorm:"type:decimal(2,1);not null" json:"rating"`
	Comment       *string   `gorm:"type:varchar(1000)" json:"comment"`
	LikesCount    int64     `gorm:"not null;default:0" json:"likesCount"`
	DislikesCount int64     `gorm:"not null;default:0" json:"dislikesCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (MerchantRating) TableName() string {
	return "merchant_ratings"
}

func (r *MerchantRating) BeforeCreate(*gorm.DB) error {
	newID(&r.ID)
	return nil
}
