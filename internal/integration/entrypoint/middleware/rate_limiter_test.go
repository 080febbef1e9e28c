package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	// The middleware bypasses limiting in e2e and test environments.
	t.Setenv("E2E_MODE", "")
	t.Setenv("ENV", "")

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiterWithConfig(client, maxAttempts, window), mr
}

func performRequest(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newTestRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiter_Middleware(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 3, time.Minute)
		router := newTestRouter(limiter)

		for i := 0; i < 3; i++ {
			if w := performRequest(router); w.Code != http.StatusOK {
				t.Fatalf("request %d: expected status 200, got %d", i+1, w.Code)
			}
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 3, time.Minute)
		router := newTestRouter(limiter)

		for i := 0; i < 3; i++ {
			performRequest(router)
		}

		w := performRequest(router)
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("expected status 429, got %d", w.Code)
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		limiter, mr := newTestLimiter(t, 1, time.Minute)
		router := newTestRouter(limiter)

		performRequest(router)
		if w := performRequest(router); w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429 before expiry, got %d", w.Code)
		}

		mr.FastForward(2 * time.Minute)

		if w := performRequest(router); w.Code != http.StatusOK {
			t.Errorf("expected status 200 after window expiry, got %d", w.Code)
		}
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		limiter, mr := newTestLimiter(t, 1, time.Minute)
		router := newTestRouter(limiter)
		mr.Close()

		if w := performRequest(router); w.Code != http.StatusOK {
			t.Errorf("expected status 200 when redis is unreachable, got %d", w.Code)
		}
	})

	t.Run("reset clears limiter state", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 1, time.Minute)
		router := newTestRouter(limiter)

		performRequest(router)
		if w := performRequest(router); w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429 before reset, got %d", w.Code)
		}

		if err := limiter.Reset(context.Background()); err != nil {
			t.Fatalf("failed to reset limiter: %v", err)
		}

		if w := performRequest(router); w.Code != http.StatusOK {
			t.Errorf("expected status 200 after reset, got %d", w.Code)
		}
	})
}
