package middleware

import (
	"RedBlack/internal/pkg/consts"
	"RedBlack/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为空串
func AuthOptionalMiddleware(revocation security.Revocation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, revocation); ok {
			c.Set(consts.ContextUserID, claims.UserID)
		} else {
			c.Set(consts.ContextUserID, "")
		}
		c.Next()
	}
}
