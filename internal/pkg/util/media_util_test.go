package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDataURL(t *testing.T) {
	assert.Equal(t, "QUJD", StripDataURL(" data:image/png;base64,QUJD "))
	assert.Equal(t, "QUJD", StripDataURL("QUJD"))
}

func TestIsBase64(t *testing.T) {
	assert.True(t, IsBase64("aGVsbG8="))
	assert.False(t, IsBase64(""))
	assert.False(t, IsBase64("not base64!"))
}

func TestDetectImageType(t *testing.T) {
	mime, ext, ok := DetectImageType([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	assert.True(t, ok)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, ".png", ext)

	_, _, ok = DetectImageType([]byte("hello world"))
	assert.False(t, ok)
}

func TestToSimplified(t *testing.T) {
	assert.Equal(t, "", ToSimplified(""))
	// 已是简体的文本保持不变
	assert.Equal(t, "曝光商家", ToSimplified("曝光商家"))
}
