package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/pkg/imagehost"
	"RedBlack/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
)

type MediaService interface {
	UploadImageFile(ctx context.Context, filename string, data []byte) (*dto.ImageUploadDTO, error)
	UploadImageBase64(ctx context.Context, source string) (*dto.ImageUploadDTO, error)
}

type mediaServiceImpl struct {
	uploader imagehost.Uploader
}

func NewMediaService(uploader imagehost.Uploader) MediaService {
	return &mediaServiceImpl{uploader: uploader}
}

func (s *mediaServiceImpl) UploadImageFile(ctx context.Context, filename string, data []byte) (*dto.ImageUploadDTO, error) {
	if len(data) == 0 {
		return nil, ErrImageMissing
	}
	if _, _, ok := util.DetectImageType(data); !ok {
		return nil, ErrFileNotSupported
	}
	res, err := s.uploader.UploadFile(ctx, filename, data)
	if err != nil {
		return nil, mapUploadError(ctx, err)
	}
	return toImageUploadDTO(res), nil
}

// UploadImageBase64 允许带 data URI 前缀
func (s *mediaServiceImpl) UploadImageBase64(ctx context.Context, source string) (*dto.ImageUploadDTO, error) {
	source = util.StripDataURL(source)
	if source == "" {
		return nil, ErrImageMissing
	}
	if !util.IsBase64(source) {
		return nil, ErrImageInvalidBase64
	}
	res, err := s.uploader.UploadBase64(ctx, source)
	if err != nil {
		return nil, mapUploadError(ctx, err)
	}
	return toImageUploadDTO(res), nil
}

func mapUploadError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, imagehost.ErrNotConfigured):
		return ErrImageHostNotConfigured
	case errors.Is(err, imagehost.ErrTimeout):
		return ErrUploadTimeout
	default:
		log.ErrorContext(ctx, "image upload failed", "err", err)
		return ErrUploadFailed
	}
}

func toImageUploadDTO(res *imagehost.Result) *dto.ImageUploadDTO {
	return &dto.ImageUploadDTO{
		URL:          res.URL,
		ThumbnailURL: res.ThumbnailURL,
		DisplayURL:   res.DisplayURL,
	}
}
