package imagehost

import (
	"RedBlack/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeImage_UploadBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "k", r.FormValue("key"))
		assert.Equal(t, "upload", r.FormValue("action"))
		assert.Equal(t, "aGVsbG8=", r.FormValue("source"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status_code":200,"status_txt":"OK","image":{"url":"https://i/1.png","display_url":"https://i/1.md.png","thumb":{"url":"https://i/1.th.png"}}}`))
	}))
	defer srv.Close()

	res, err := NewFreeImage(srv.URL, "k", time.Second).UploadBase64(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "https://i/1.png", res.URL)
	assert.Equal(t, "https://i/1.md.png", res.DisplayURL)
	assert.Equal(t, "https://i/1.th.png", res.ThumbnailURL)
}

func TestFreeImage_UploadFileFallsBackToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("source")
		require.NoError(t, err)
		assert.Equal(t, "a.png", header.Filename)
		_, _ = w.Write([]byte(`{"status_code":200,"image":{"url":"https://i/2.png"}}`))
	}))
	defer srv.Close()

	res, err := NewFreeImage(srv.URL, "k", time.Second).UploadFile(context.Background(), "a.png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://i/2.png", res.ThumbnailURL)
	assert.Equal(t, "https://i/2.png", res.DisplayURL)
}

func TestFreeImage_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFreeImage("http://unused", "", time.Second).UploadBase64(ctx, "aGVsbG8=")
	assert.ErrorIs(t, err, ErrNotConfigured)

	rejected := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status_code":400,"error":{"message":"Invalid API key"}}`))
	}))
	defer rejected.Close()
	_, err = NewFreeImage(rejected.URL, "k", time.Second).UploadBase64(ctx, "aGVsbG8=")
	assert.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "Invalid API key")

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer garbage.Close()
	_, err = NewFreeImage(garbage.URL, "k", time.Second).UploadBase64(ctx, "aGVsbG8=")
	assert.ErrorIs(t, err, ErrRemote)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer slow.Close()
	_, err = NewFreeImage(slow.URL, "k", 50*time.Millisecond).UploadBase64(ctx, "aGVsbG8=")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNew(t *testing.T) {
	_, err := New(configFor("unknown"))
	assert.Error(t, err)

	up, err := New(configFor("freeimage"))
	require.NoError(t, err)
	assert.IsType(t, &FreeImage{}, up)
}

func configFor(provider string) config.ImageHostConfig {
	return config.ImageHostConfig{
		Provider:  provider,
		FreeImage: config.FreeImageConfig{Endpoint: "http://unused", APIKey: "k", Timeout: 1},
	}
}
