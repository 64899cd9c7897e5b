package dto

import (
	"RedBlack/internal/model"
	"time"
)

type MerchantDTO struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Slug          string              `json:"slug"`
	DisplayName   string              `json:"displayName"`
	Category      string              `json:"category"`
	Location      string              `json:"location"`
	Description   string              `json:"description"`
	Highlights    []string            `json:"highlights"`
	AvatarColor   string              `json:"avatarColor"`
	ResponseTime  string              `json:"responseTime"`
	AverageRating float64             `json:"averageRating"`
	TotalRatings  int64               `json:"totalRatings"`
	LikesCount    int64               `json:"likesCount"`
	DislikesCount int64               `json:"dislikesCount"`
	UserReaction  *model.ReactionType `json:"userReaction"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// MerchantMeDTO 当前登录者的商家身份
type MerchantMeDTO struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsMerchant      bool         `json:"isMerchant"`
	Merchant        *MerchantDTO `json:"merchant"`
}

// MerchantApplyDTO highlights 可以是字符串数组或逗号分隔的字符串
type MerchantApplyDTO struct {
	Category    *string     `json:"category"`
	Location    *string     `json:"location"`
	Description *string     `json:"description"`
	Highlights  interface{} `json:"highlights"`
}
