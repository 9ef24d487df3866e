package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-listener/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestDailyQuota(t *testing.T) {
	quota := middleware.NewDailyQuota(3)

	assert.True(t, quota.Allow())
	assert.True(t, quota.Allow())
	assert.True(t, quota.Allow())
	assert.False(t, quota.Allow())
	assert.Equal(t, int64(0), quota.Remaining())
	assert.Greater(t, quota.SecondsUntilReset(), 0)
}

func newLimitedRouter(ipLimiter *middleware.IPRateLimiter, quota *middleware.DailyQuota) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/chat", middleware.RateLimitMiddleware(ipLimiter, quota), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitMiddlewareQuotaExceeded(t *testing.T) {
	router := newLimitedRouter(
		middleware.NewIPRateLimiter(rate.Limit(100), 100),
		middleware.NewDailyQuota(1),
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "DAILY_QUOTA_EXCEEDED")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewarePerIP(t *testing.T) {
	router := newLimitedRouter(
		middleware.NewIPRateLimiter(rate.Limit(0.1), 1),
		middleware.NewDailyQuota(1000),
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
