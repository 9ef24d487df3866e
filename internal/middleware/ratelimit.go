package middleware

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages per-IP rate limiting
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
	}
}

// GetLimiter returns the rate limiter for a given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	limiter, exists := l.limiters.Load(ip)
	if !exists {
		newLimiter := rate.NewLimiter(l.rate, l.burst)
		l.limiters.Store(ip, newLimiter)
		return newLimiter
	}
	return limiter.(*rate.Limiter)
}

// DailyQuota manages the global daily request quota
type DailyQuota struct {
	count   int64
	limit   int64
	resetAt time.Time
	mu      sync.Mutex
}

// NewDailyQuota creates a new daily quota manager
func NewDailyQuota(limit int64) *DailyQuota {
	return &DailyQuota{
		limit:   limit,
		resetAt: nextMidnightUTC(),
	}
}

// Allow checks if a request is allowed and increments the counter
func (q *DailyQuota) Allow() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if time.Now().After(q.resetAt) {
		log.Printf("[QUOTA] Daily quota reset. Previous count: %d", q.count)
		q.count = 0
		q.resetAt = nextMidnightUTC()
	}

	if q.count >= q.limit {
		return false
	}
	q.count++
	return true
}

// Remaining returns the remaining quota
func (q *DailyQuota) Remaining() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit - q.count
}

// SecondsUntilReset returns the seconds until the quota resets
func (q *DailyQuota) SecondsUntilReset() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	seconds := int(time.Until(q.resetAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

func nextMidnightUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
}

// RateLimitMiddleware applies two layers: the global daily quota, then the
// per-IP limiter. Rejections use the chat-compatible JSON shape so clients
// can render them like any other reply.
func RateLimitMiddleware(ipLimiter *IPRateLimiter, quota *DailyQuota) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !quota.Allow() {
			c.Header("Retry-After", fmt.Sprintf("%d", quota.SecondsUntilReset()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"response":   "I've been talking a lot today and need to rest. Please come back tomorrow — I'll be here.",
				"emotion":    "tired",
				"coping_tip": "Take a break from the screen for a bit. A short walk can do wonders.",
				"is_crisis":  false,
				"code":       "DAILY_QUOTA_EXCEEDED",
			})
			return
		}

		limiter := ipLimiter.GetLimiter(c.ClientIP())
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"response":   "Whoa, slow down a little! Give me a second to catch up.",
				"emotion":    "neutral",
				"coping_tip": "Take a breath between messages — I'm not going anywhere.",
				"is_crisis":  false,
				"code":       "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}
