package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/ping", func(c *gin.Context) { c.String(http.StatusOK, "posted") })
	return r
}

func postForm(r http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCSRFProtection(t *testing.T) {
	r := newRouter(CSRFProtection())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected GET to pass, got %d", rec.Code)
	}

	if rec := postForm(r, url.Values{}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d without token, got %d", http.StatusForbidden, rec.Code)
	}
	if rec := postForm(r, url.Values{CSRFFormField: {"forged"}}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d for unknown token, got %d", http.StatusForbidden, rec.Code)
	}
	if rec := postForm(r, url.Values{CSRFFormField: {GenerateCSRFToken()}}); rec.Code != http.StatusOK {
		t.Fatalf("expected status %d with token, got %d", http.StatusOK, rec.Code)
	}
}

func TestCSRFTokenExpires(t *testing.T) {
	token := GenerateCSRFToken()
	csrfMutex.Lock()
	csrfTokens[token] = time.Now().Add(-2 * csrfTokenTTL)
	csrfMutex.Unlock()

	if rec := postForm(newRouter(CSRFProtection()), url.Values{CSRFFormField: {token}}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected expired token to be rejected, got %d", rec.Code)
	}
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	r := newRouter(RequestID(), RequestLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("expected generated uuid, got %q", rec.Header().Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != id {
		t.Fatalf("expected request id %q to be kept, got %q", id, rec.Header().Get(RequestIDHeader))
	}
}

func TestWriteRateLimitAllowsWithoutRedis(t *testing.T) {
	r := newRouter(WriteRateLimit(1, time.Minute))
	for i := 0; i < 3; i++ {
		if rec := postForm(r, url.Values{}); rec.Code != http.StatusOK {
			t.Fatalf("expected writes to pass when redis is absent, got %d", rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(SecurityHeaders()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("expected X-Frame-Options header")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS must only be sent over TLS")
	}
}
