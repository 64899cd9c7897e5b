package middleware

import (
	"RedBlack/internal/api/config"
	"RedBlack/internal/pkg/consts"
	"RedBlack/internal/pkg/security"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuditMiddleware_KeepsBodyForHandler(t *testing.T) {
	r := gin.New()
	r.Use(AuditMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		c.String(http.StatusOK, string(body))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"type":"LIKE"}`)))
	assert.Equal(t, `{"type":"LIKE"}`, w.Body.String())
}

func TestReadAuditBody(t *testing.T) {
	newCtx := func(body, contentType string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", contentType)
		return c
	}

	long := strings.Repeat("x", auditBodyLimit+10)
	got := readAuditBody(newCtx(long, "application/json"))
	assert.True(t, strings.HasSuffix(got, "...(truncated)"))
	assert.Len(t, got, auditBodyLimit+len("...(truncated)"))

	c := newCtx("--b\r\n", "multipart/form-data; boundary=b")
	c.Request.Header.Set("Content-Length", "5")
	assert.Equal(t, "<multipart 5 bytes>", readAuditBody(c))
}

type stubRevocation struct {
	revoked bool
	err     error
}

func (s stubRevocation) IsRevoked(context.Context, string) (bool, error) { return s.revoked, s.err }

func TestAuthMiddlewares(t *testing.T) {
	security.Init(config.JWTConfig{Secret: "mw-test", Issuer: "redblack-identity"})
	token, err := security.GenerateToken(security.UserClaims{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	serve := func(mw gin.HandlerFunc, header string) (int, string) {
		r := gin.New()
		r.GET("/", mw, func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(consts.ContextUserID))
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code, w.Body.String()
	}

	code, body := serve(AuthMiddleware(nil), "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "u1", body)

	code, _ = serve(AuthMiddleware(nil), "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = serve(AuthMiddleware(nil), token)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = serve(AuthMiddleware(stubRevocation{revoked: true}), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = serve(AuthMiddleware(stubRevocation{err: errors.New("redis down")}), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = serve(AuthOptionalMiddleware(nil), "Bearer broken")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "", body)
	code, body = serve(AuthOptionalMiddleware(stubRevocation{}), "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "u1", body)
}

func TestCORSMiddleware_AllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://ok.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://ok.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://ok.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
