package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanoutAndTracedOnly(t *testing.T) {
	var local, remote bytes.Buffer
	h := &ContextHandler{fanoutHandler{
		log.NewJSONHandler(&local, nil),
		tracedOnlyHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	logger := log.New(h)

	logger.Info("boot")
	logger.InfoContext(WithTraceID(context.Background(), "abc"), "request")

	assert.Contains(t, local.String(), `"msg":"boot"`)
	assert.Contains(t, local.String(), `"msg":"request"`)
	assert.NotContains(t, remote.String(), "boot")
	assert.Contains(t, remote.String(), `"trace_id":"abc"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, log.LevelError, ParseLevel("error"))
	assert.Equal(t, log.LevelInfo, ParseLevel(""))
}

func TestPeekBody(t *testing.T) {
	data, rc := peekBody(http.NoBody)
	assert.Nil(t, data)
	assert.Equal(t, http.NoBody, rc)

	req := httptest.NewRequest(http.MethodPost, "/_search", strings.NewReader(`{"query":{}}`))
	data, req.Body = peekBody(req.Body)
	assert.Equal(t, `{"query":{}}`, string(data))

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"query":{}}`, buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...[truncated]", truncate("abc", 2))
}
