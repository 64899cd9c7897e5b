package dto

// ImageUploadDTO 图床上传结果
type ImageUploadDTO struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}
