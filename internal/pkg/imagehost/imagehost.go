package imagehost

import (
	"RedBlack/internal/api/config"
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotConfigured = errors.New("image host is not configured")
	ErrTimeout       = errors.New("image host timeout")
	ErrRemote        = errors.New("image host rejected upload")
)

// Result 图床返回的三种尺寸地址
type Result struct {
	URL          string
	ThumbnailURL string
	DisplayURL   string
}

// Uploader 图床
type Uploader interface {
	UploadFile(ctx context.Context, filename string, data []byte) (*Result, error)
	UploadBase64(ctx context.Context, source string) (*Result, error)
}

// New 按配置选择图床实现
func New(cfg config.ImageHostConfig) (Uploader, error) {
	switch cfg.Provider {
	case "", "freeimage":
		return NewFreeImage(cfg.FreeImage.Endpoint, cfg.FreeImage.APIKey, time.Duration(cfg.FreeImage.Timeout)*time.Second), nil
	case "minio":
		return NewMinIOHost(cfg.ThumbSize), nil
	default:
		return nil, fmt.Errorf("unknown image host provider %q", cfg.Provider)
	}
}
