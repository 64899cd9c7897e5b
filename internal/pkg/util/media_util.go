package util

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/liuzl/gocc"
)

var base64Regex = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StripDataURL 去掉 data:image/xxx;base64, 前缀
func StripDataURL(source string) string {
	source = strings.TrimSpace(source)
	if strings.HasPrefix(source, "data:") {
		if i := strings.Index(source, ","); i >= 0 {
			return source[i+1:]
		}
	}
	return source
}

// IsBase64 只做字符集校验，不解码
func IsBase64(source string) bool {
	return source != "" && base64Regex.MatchString(source)
}

// DetectImageType 嗅探图片类型，返回 mime 与扩展名
func DetectImageType(data []byte) (string, string, bool) {
	mimeType := mimetype.Detect(data).String()
	ext, ok := allowedImageTypes[mimeType]
	return mimeType, ext, ok
}

var (
	t2sOnce sync.Once
	t2s     *gocc.OpenCC
)

// ToSimplified 尽可能返回简体，转换器不可用时原样返回
func ToSimplified(s string) string {
	t2sOnce.Do(func() {
		t2s, _ = gocc.New("t2s")
	})
	if t2s == nil || s == "" {
		return s
	}
	out, err := t2s.Convert(s)
	if err != nil {
		return s
	}
	return out
}
