package redis

import (
	"RedBlack/internal/pkg/consts"
	"context"
)

// TokenBlacklist 身份服务注销 Token 时按签名写入黑名单
type TokenBlacklist struct{}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{}
}

func (TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	value, err := GetValue(ctx, consts.TokenRevokedKey+signature)
	if err != nil {
		return false, err
	}
	return value != "", nil
}
