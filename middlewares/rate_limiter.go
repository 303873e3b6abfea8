package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdle is how long an IP's bucket is kept after its last request.
const limiterIdle = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP. Buckets of IPs that
// stay quiet for the idle period expire.
type IPRateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
	mu       sync.Mutex
}

func NewIPRateLimiter(every time.Duration, burst int) *IPRateLimiter {
	return newIPRateLimiter(every, burst, limiterIdle)
}

func newIPRateLimiter(every time.Duration, burst int, idle time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:    rate.Every(every),
		burst:    burst,
		limiters: cache.New(idle, idle),
	}
}

func (rl *IPRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	var l *rate.Limiter
	if v, ok := rl.limiters.Get(ip); ok {
		l = v.(*rate.Limiter)
	} else {
		l = rate.NewLimiter(rl.limit, rl.burst)
	}
	// Refresh the expiry on every request.
	rl.limiters.SetDefault(ip, l)
	return l
}

// Len is the number of tracked IPs, expired ones included until cleanup.
func (rl *IPRateLimiter) Len() int {
	return rl.limiters.ItemCount()
}

// Allow reports whether one more request from ip fits its bucket.
func (rl *IPRateLimiter) Allow(ip string) bool {
	return rl.limiter(ip).Allow()
}

func (rl *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please wait a moment",
			})
			return
		}
		c.Next()
	}
}

// NewStrictRateLimiter guards login and registration: 5 attempts per
// minute per IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	return NewIPRateLimiter(time.Minute/5, 5).RateLimit()
}
