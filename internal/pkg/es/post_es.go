package es

import "time"

// PostES 写入 ES 的帖子文档，文本字段已转为简体
type PostES struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	LikesCount    int64     `json:"likes_count"`
	DislikesCount int64     `json:"dislikes_count"`
	CreatedAt     time.Time `json:"created_at"`
}
