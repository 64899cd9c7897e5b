package service

import (
	"RedBlack/internal/pkg/imagehost"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadFile(_ context.Context, filename string, data []byte) (*imagehost.Result, error) {
	args := m.Called(filename, data)
	res, _ := args.Get(0).(*imagehost.Result)
	return res, args.Error(1)
}

func (m *mockUploader) UploadBase64(_ context.Context, source string) (*imagehost.Result, error) {
	args := m.Called(source)
	res, _ := args.Get(0).(*imagehost.Result)
	return res, args.Error(1)
}

var uploaded = &imagehost.Result{URL: "https://img/1.png", ThumbnailURL: "https://img/1.th.png", DisplayURL: "https://img/1.md.png"}

func TestUploadImageFile(t *testing.T) {
	up := new(mockUploader)
	up.On("UploadFile", "a.png", pngHeader).Return(uploaded, nil).Once()
	svc := NewMediaService(up)
	ctx := context.Background()

	got, err := svc.UploadImageFile(ctx, "a.png", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "https://img/1.png", got.URL)
	assert.Equal(t, "https://img/1.th.png", got.ThumbnailURL)
	assert.Equal(t, "https://img/1.md.png", got.DisplayURL)

	_, err = svc.UploadImageFile(ctx, "a.txt", []byte("plain text"))
	assert.ErrorIs(t, err, ErrFileNotSupported)
	_, err = svc.UploadImageFile(ctx, "empty", nil)
	assert.ErrorIs(t, err, ErrImageMissing)

	up.AssertExpectations(t)
}

func TestUploadImageBase64(t *testing.T) {
	up := new(mockUploader)
	up.On("UploadBase64", "iVBORw0KGgo=").Return(uploaded, nil).Once()
	svc := NewMediaService(up)
	ctx := context.Background()

	_, err := svc.UploadImageBase64(ctx, "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)

	_, err = svc.UploadImageBase64(ctx, "data:image/png;base64,")
	assert.ErrorIs(t, err, ErrImageMissing)
	_, err = svc.UploadImageBase64(ctx, "不是base64!")
	assert.ErrorIs(t, err, ErrImageInvalidBase64)

	up.AssertExpectations(t)
}

func TestUploadImage_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want error
		code int
	}{
		{imagehost.ErrNotConfigured, ErrImageHostNotConfigured, InternalServerError},
		{imagehost.ErrTimeout, ErrUploadTimeout, RequestTimeout},
		{fmt.Errorf("%w: quota", imagehost.ErrRemote), ErrUploadFailed, BadGateway},
		{errors.New("boom"), ErrUploadFailed, BadGateway},
	}
	for _, c := range cases {
		up := new(mockUploader)
		up.On("UploadBase64", "aGVsbG8=").Return(nil, c.err).Once()

		_, err := NewMediaService(up).UploadImageBase64(context.Background(), "aGVsbG8=")
		assert.ErrorIs(t, err, c.want)
		_, code, ok := StatusOf(err)
		assert.True(t, ok)
		assert.Equal(t, c.code, code)
		up.AssertExpectations(t)
	}
}

func TestStatusOf(t *testing.T) {
	known, code, ok := StatusOf(fmt.Errorf("wrapped: %w", ErrAlreadyReacted))
	assert.True(t, ok)
	assert.Equal(t, ErrAlreadyReacted, known)
	assert.Equal(t, Conflict, code)

	_, code, ok = StatusOf(errors.New("db down"))
	assert.False(t, ok)
	assert.Equal(t, InternalServerError, code)
}
