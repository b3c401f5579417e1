package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRateLimit поднимает miniredis и создаёт middleware с заданным лимитом.
func setupRateLimit(t *testing.T, limit int) *RateLimitMiddleware {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	return NewRateLimitMiddleware(RateLimitConfig{
		Redis:  redisClient,
		Limit:  limit,
		Window: time.Minute,
	})
}

// doRequest прогоняет один запрос через middleware от указанного IP.
func doRequest(mw *RateLimitMiddleware, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	c.Request.RemoteAddr = remoteAddr

	mw.Handle()(c)
	return w
}

func TestRateLimitMiddleware_AllowsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := setupRateLimit(t, 5)

	for i := 0; i < 5; i++ {
		w := doRequest(mw, "192.168.1.1:12345")

		assert.NotEqual(t, http.StatusTooManyRequests, w.Code, "запрос %d должен пройти", i+1)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitMiddleware_BlocksExcessRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := setupRateLimit(t, 3)

	for i := 0; i < 3; i++ {
		w := doRequest(mw, "10.0.0.1:12345")
		assert.NotEqual(t, http.StatusTooManyRequests, w.Code, "запрос %d должен пройти", i+1)
	}

	// Четвёртый запрос должен быть заблокирован
	w := doRequest(mw, "10.0.0.1:12345")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_SeparateLimitsPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := setupRateLimit(t, 1)

	first := doRequest(mw, "10.0.0.1:12345")
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	// Лимит первого IP исчерпан, второй IP не затронут
	blocked := doRequest(mw, "10.0.0.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := doRequest(mw, "10.0.0.2:12345")
	assert.NotEqual(t, http.StatusTooManyRequests, other.Code)
}

func TestRateLimitMiddleware_FailOpenOnRedisError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	mw := NewRateLimitMiddleware(RateLimitConfig{
		Redis:  redisClient,
		Limit:  1,
		Window: time.Minute,
	})

	// Redis недоступен — запросы проходят (fail-open)
	mr.Close()

	w := doRequest(mw, "10.0.0.3:12345")
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
}
