package dto

import "time"

type CommentCreateDTO struct {
	Content string `json:"content"`
}

type CommentDTO struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	TargetType string       `json:"targetType"`
	TargetID   string       `json:"targetId"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	User       UserBriefDTO `json:"user"`
}

type CommentResultDTO struct {
	Comment       *CommentDTO `json:"comment"`
	CommentsCount int64       `json:"commentsCount"`
}

// CommentPageDTO 评论分页结果
type CommentPageDTO struct {
	Items      []*CommentDTO `json:"items"`
	Pagination *Pagination   `json:"pagination"`
}
