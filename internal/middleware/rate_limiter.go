package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter applies a per-client-IP token bucket. Limiters are kept for
// the process lifetime; at planner scale the visitor map stays small.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	var visitors = make(map[string]*rate.Limiter)
	var mu sync.Mutex

	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, exists := visitors[ip]
		if !exists {
			limiter = rate.NewLimiter(r, b)
			visitors[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := getVisitor(ip)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Demasiadas peticiones, intenta más tarde",
			})
			return
		}
		c.Next()
	}
}

// DistributedRateLimiter enforces a sliding-window limit in Redis so the
// count survives restarts and is shared across replicas. It keys on the
// authenticated student when available, falling back to the client IP.
type DistributedRateLimiter struct {
	redis  *redis.Client
	rate   int
	window time.Duration
}

func NewDistributedRateLimiter(redisClient *redis.Client, ratePerWindow int, window time.Duration) *DistributedRateLimiter {
	return &DistributedRateLimiter{
		redis:  redisClient,
		rate:   ratePerWindow,
		window: window,
	}
}

func (rl *DistributedRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rate_limit:" + rl.clientKey(c)

		allowed, err := rl.checkLimit(c, key)
		if err != nil {
			// Redis being down must not take the API with it.
			c.Next()
			return
		}

		if !allowed {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
			c.Header("X-RateLimit-Window", rl.window.String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Demasiadas peticiones, intenta más tarde",
			})
			return
		}

		c.Next()
	}
}

func (rl *DistributedRateLimiter) clientKey(c *gin.Context) string {
	if id, ok := StudentID(c); ok {
		return "student:" + id.String()
	}
	return "ip:" + c.ClientIP()
}

func (rl *DistributedRateLimiter) checkLimit(c *gin.Context, key string) (bool, error) {
	ctx := c.Request.Context()

	now := time.Now().UnixNano()
	windowStart := now - rl.window.Nanoseconds()

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.Expire(ctx, key, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return countCmd.Val() < int64(rl.rate), nil
}
