package dto

import "time"

type RatingCreateDTO struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

type RatingDTO struct {
	ID         string       `json:"id"`
	MerchantID string       `json:"merchantId"`
	UserID     string       `json:"userId"`
	Rating     float64      `json:"rating"`
	Comment    *string      `json:"comment"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	User       UserBriefDTO `json:"user"`
}

type RatingResultDTO struct {
	Rating        *RatingDTO `json:"rating"`
	Created       bool       `json:"created"`
	AverageRating float64    `json:"averageRating"`
	TotalRatings  int64      `json:"totalRatings"`
}
