package dto

import "RedBlack/internal/model"

type ReactionDTO struct {
	Type string `json:"type"`
}

// ReactionResultDTO 反应之后目标的最新计数与调用者当前的反应
type ReactionResultDTO struct {
	LikesCount    int64               `json:"likesCount"`
	DislikesCount int64               `json:"dislikesCount"`
	UserReaction  *model.ReactionType `json:"userReaction"`
}
