package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 身份服务签发的 Token 中携带的用户信息
type UserClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Image  string `json:"image"`
	jwt.RegisteredClaims
}
