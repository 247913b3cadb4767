package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-adapter/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterExhaustsTokens(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if limiter.Allow() {
		t.Error("fourth request should be rejected")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(1, time.Minute))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}

func TestBodySizeLimitRejectsLargeBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodySizeLimit(16))
	router.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := strings.NewReader(strings.Repeat("x", 64))
	req := httptest.NewRequest(http.MethodPost, "/echo", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestDeduplicationBlocksRepeatedPost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DedupWindow: time.Minute}
	router := gin.New()
	router.Use(Deduplication(cfg))
	router.POST("/adapt", func(c *gin.Context) { c.Status(http.StatusOK) })

	payload := []byte(`{"ingredients":[{"name":"butter"}]}`)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/adapt", bytes.NewReader(payload)))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/adapt", bytes.NewReader(payload)))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("duplicate request status = %d, want 429", second.Code)
	}
}

func TestDeduplicationIgnoresGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DedupWindow: time.Minute}
	router := gin.New()
	router.Use(Deduplication(cfg))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET request %d status = %d, want 200", i, w.Code)
		}
	}
}
