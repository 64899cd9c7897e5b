package dto

import (
	"RedBlack/internal/model"
	"time"
)

// PostCreateDTO 曝光帖子
type PostCreateDTO struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Images  []string `json:"images" validate:"omitempty,max=9,dive,url"`
}

type PostImageDTO struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

type PostDTO struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Title         string              `json:"title"`
	Content       string              `json:"content"`
	Tags          []string            `json:"tags"`
	LikesCount    int64               `json:"likesCount"`
	DislikesCount int64               `json:"dislikesCount"`
	CommentsCount int64               `json:"commentsCount"`
	ViewsCount    int64               `json:"viewsCount"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	User          UserBriefDTO        `json:"user"`
	Images        []PostImageDTO      `json:"images"`
	UserReaction  *model.ReactionType `json:"userReaction"`
}

type PostPageDTO struct {
	Items      []*PostDTO  `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type PostSearchDTO struct {
	Keyword string `form:"keyword" binding:"required"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}
