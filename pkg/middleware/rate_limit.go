package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const minVisitorIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than it takes them to refill are dropped.
type RateLimiter struct {
	ips       map[string]*visitor
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	idle := minVisitorIdle
	if r > 0 {
		if refill := time.Duration(float64(b) / float64(r) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &RateLimiter{
		ips:   make(map[string]*visitor),
		rate:  r,
		burst: b,
		idle:  idle,
		now:   time.Now,
	}
}

func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	if v, exists := rl.ips[ip]; exists {
		v.lastSeen = now
		return v.limiter
	}

	v := &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
	rl.ips[ip] = v
	return v.limiter
}

// Len reports how many client buckets are currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.ips)
}

// sweep runs at most once per idle window; callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idle {
		return
	}
	rl.lastSweep = now
	for ip, v := range rl.ips {
		if now.Sub(v.lastSeen) >= rl.idle {
			delete(rl.ips, ip)
		}
	}
}

// GenerationRateLimit caps how often one client can start a generation; each
// call holds a model slot for up to several minutes.
func GenerationRateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimitHandler(newGenerationLimiter(perMinute))
}

func newGenerationLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(1, perMinute/6))
}

func rateLimitHandler(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.GetLimiter(c.ClientIP()).AllowN(rl.now(), 1) {
			utils.RespondError(c, http.StatusTooManyRequests, "Rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
