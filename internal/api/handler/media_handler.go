package handler

import (
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 32 << 20

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// UploadImage multipart 的 file 字段优先，其次是 base64 的 source 字段
func (s *MediaHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxImageSize {
			response.Error(c, service.ErrFileNotSupported)
			return
		}
		reader, err := file.Open()
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		defer func() { _ = reader.Close() }()

		data, err := io.ReadAll(io.LimitReader(reader, maxImageSize))
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}

		result, err := s.mediaSvc.UploadImageFile(ctx, file.Filename, data)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, result)
		return
	}

	source := c.PostForm("source")
	if source == "" {
		response.Error(c, service.ErrImageMissing)
		return
	}

	result, err := s.mediaSvc.UploadImageBase64(ctx, source)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
