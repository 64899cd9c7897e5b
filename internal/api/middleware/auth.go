package middleware

import (
	"RedBlack/internal/pkg/consts"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/pkg/security"
	"RedBlack/internal/service"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(revocation security.Revocation) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, revocation)
		if !ok {
			response.Fail(c, response.Unauthorized, service.ErrNotLoggedIn.Error())
			c.Abort()
			return
		}

		c.Set(consts.ContextUserID, claims.UserID)
		c.Next()
	}
}

// parseBearer 解析 Authorization 头，黑名单查询失败时按未登录处理
func parseBearer(c *gin.Context, revocation security.Revocation) (*security.UserClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}

	if revocation != nil {
		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			return nil, false
		}
		revoked, err := revocation.IsRevoked(c.Request.Context(), signature)
		if err != nil {
			log.WarnContext(c.Request.Context(), "token blacklist lookup failed", "err", err)
			return nil, false
		}
		if revoked {
			return nil, false
		}
	}
	return claims, true
}
