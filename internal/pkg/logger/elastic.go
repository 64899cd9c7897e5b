package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const (
	slowESThreshold = 500 * time.Millisecond
	esBodyLogLimit  = 1000
)

// ESTransport 包装 Elasticsearch 的 http.RoundTripper，记录检索语句、状态码与耗时
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var query []byte
	query, req.Body = peekBody(req.Body)

	start := time.Now()
	resp, err := t.next().RoundTrip(req)
	latency := time.Since(start)

	ctx := req.Context()
	attrs := []any{
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", latency),
		log.String("query", truncate(string(query), esBodyLogLimit)),
	}
	if err != nil {
		log.ErrorContext(ctx, "ES request failed", append(attrs, log.Any("err", err))...)
		return nil, err
	}

	attrs = append(attrs, log.Int("status", resp.StatusCode))
	switch {
	case resp.StatusCode >= http.StatusBadRequest:
		var answer []byte
		answer, resp.Body = peekBody(resp.Body)
		log.WarnContext(ctx, "ES request rejected", append(attrs, log.String("response", truncate(string(answer), esBodyLogLimit)))...)
	case latency > slowESThreshold:
		log.WarnContext(ctx, "ES request slow", attrs...)
	default:
		log.DebugContext(ctx, "ES request", attrs...)
	}
	return resp, nil
}

func (t *ESTransport) next() http.RoundTripper {
	if t.Transport == nil {
		return http.DefaultTransport
	}
	return t.Transport
}

// peekBody 读出全部内容并换上一个等价的 Body
func peekBody(rc io.ReadCloser) ([]byte, io.ReadCloser) {
	if rc == nil || rc == http.NoBody {
		return nil, rc
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return nil, io.NopCloser(bytes.NewReader(data))
	}
	return data, io.NopCloser(bytes.NewReader(data))
}
