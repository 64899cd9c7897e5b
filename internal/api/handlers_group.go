package api

import (
	"RedBlack/internal/api/handler"
	"RedBlack/internal/pkg/security"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MerchantHandler *handler.MerchantHandler
	ReactionHandler *handler.ReactionHandler
	RatingHandler   *handler.RatingHandler
	CommentHandler  *handler.CommentHandler
	PostHandler     *handler.PostHandler
	MediaHandler    *handler.MediaHandler
	SysBoxHandler   *handler.SysBoxHandler

	// Revocation 为 nil 时不查询 Token 黑名单
	Revocation  security.Revocation
	CORSOrigins []string
}
