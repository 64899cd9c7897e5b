package imagehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

type freeImageResponse struct {
	StatusCode int    `json:"status_code"`
	StatusTxt  string `json:"status_txt"`
	Image      *struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
		Thumb      *struct {
			URL string `json:"url"`
		} `json:"thumb"`
	} `json:"image"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FreeImage freeimage.host 上传客户端
type FreeImage struct {
	endpoint string
	apiKey   string
	client   *resty.Client
}

func NewFreeImage(endpoint, apiKey string, timeout time.Duration) *FreeImage {
	return &FreeImage{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   resty.New().SetTimeout(timeout),
	}
}

func (s *FreeImage) UploadFile(ctx context.Context, filename string, data []byte) (*Result, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}
	req := s.newRequest(ctx).SetFileReader("source", filename, bytes.NewReader(data))
	return s.do(ctx, req)
}

// UploadBase64 source 需为不带 data URI 前缀的纯 base64
func (s *FreeImage) UploadBase64(ctx context.Context, source string) (*Result, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}
	req := s.newRequest(ctx).SetMultipartFormData(map[string]string{"source": source})
	return s.do(ctx, req)
}

func (s *FreeImage) newRequest(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"key":    s.apiKey,
			"action": "upload",
			"format": "json",
		})
}

func (s *FreeImage) do(ctx context.Context, req *resty.Request) (*Result, error) {
	resp, err := req.Post(s.endpoint)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}

	var body freeImageResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		log.WarnContext(ctx, "freeimage response unreadable", "status", resp.StatusCode(), "err", err)
		return nil, fmt.Errorf("%w: unreadable response", ErrRemote)
	}
	if !resp.IsSuccess() || body.StatusCode != 200 {
		msg := body.StatusTxt
		if body.Error != nil && body.Error.Message != "" {
			msg = body.Error.Message
		}
		log.WarnContext(ctx, "freeimage upload rejected", "status", resp.StatusCode(), "msg", msg)
		return nil, fmt.Errorf("%w: %s", ErrRemote, msg)
	}
	if body.Image == nil || body.Image.URL == "" {
		return nil, fmt.Errorf("%w: missing image url", ErrRemote)
	}

	result := &Result{
		URL:          body.Image.URL,
		ThumbnailURL: body.Image.URL,
		DisplayURL:   body.Image.URL,
	}
	if body.Image.Thumb != nil && body.Image.Thumb.URL != "" {
		result.ThumbnailURL = body.Image.Thumb.URL
	}
	if body.Image.DisplayURL != "" {
		result.DisplayURL = body.Image.DisplayURL
	}
	return result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
