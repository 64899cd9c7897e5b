package imagehost

import (
	"RedBlack/internal/pkg/minio"
	"RedBlack/internal/pkg/util"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// MinIOHost 自建图床：原图与缩略图都存入 MinIO
type MinIOHost struct {
	thumbSize int
}

func NewMinIOHost(thumbSize int) *MinIOHost {
	if thumbSize <= 0 {
		thumbSize = 320
	}
	return &MinIOHost{thumbSize: thumbSize}
}

func (s *MinIOHost) UploadFile(ctx context.Context, _ string, data []byte) (*Result, error) {
	if minio.Client == nil {
		return nil, ErrNotConfigured
	}
	mimeType, ext, ok := util.DetectImageType(data)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrRemote, mimeType)
	}

	base := time.Now().Format("2006/01/02/") + uuid.NewString()
	url, err := minio.PutImage(ctx, base+ext, data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	result := &Result{URL: url, ThumbnailURL: url, DisplayURL: url}

	// 缩略图失败不影响原图
	thumb, err := s.thumbnail(data)
	if err != nil {
		return result, nil
	}
	if thumbURL, err := minio.PutImage(ctx, base+"_thumb.jpg", thumb, "image/jpeg"); err == nil {
		result.ThumbnailURL = thumbURL
	}
	return result, nil
}

func (s *MinIOHost) UploadBase64(ctx context.Context, source string) (*Result, error) {
	data, err := base64.StdEncoding.DecodeString(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	return s.UploadFile(ctx, "", data)
}

// thumbnail 等比缩放到 thumbSize 以内，统一输出 JPEG
func (s *MinIOHost) thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Fit(img, s.thumbSize, s.thumbSize, imaging.Lanczos)
	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
