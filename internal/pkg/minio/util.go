package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// PutImage 写入主桶并返回外部可访问的地址
func PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	info, err := Client.PutObject(ctx, MainBucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return PublicURL(info.Key), nil
}

// PublicURL 外部地址未带协议时按 https 处理
func PublicURL(key string) string {
	base := strings.TrimSuffix(publicEndpoint, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base + "/" + MainBucket + "/" + strings.TrimPrefix(key, "/")
}
