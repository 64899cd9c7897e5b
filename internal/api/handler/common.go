package handler

import (
	"RedBlack/internal/pkg/consts"

	"github.com/gin-gonic/gin"
)

// currentUserID 鉴权中间件写入的用户 ID，匿名访问为空串
func currentUserID(c *gin.Context) string {
	return c.GetString(consts.ContextUserID)
}
