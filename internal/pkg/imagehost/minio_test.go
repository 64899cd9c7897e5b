package imagehost

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinIOHost_Thumbnail(t *testing.T) {
	src := imaging.New(800, 400, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, src, imaging.PNG))

	thumb, err := NewMinIOHost(100).thumbnail(buf.Bytes())
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestMinIOHost_NotConfigured(t *testing.T) {
	_, err := NewMinIOHost(0).UploadBase64(context.Background(), "aGVsbG8=")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
