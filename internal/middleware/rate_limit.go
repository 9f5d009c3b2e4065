package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long a user's limiter survives without requests
	limiterIdleTTL = 10 * time.Minute
	sweepInterval  = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// GenerationRateLimiter throttles LLM-backed requests per authenticated user.
type GenerationRateLimiter struct {
	mu       sync.Mutex
	visitors map[uint]*visitor
	limit    rate.Limit
	burst    int
	interval time.Duration
	now      func() time.Time
}

// NewGenerationRateLimiter allows perMinute requests per user, with a burst of the same size.
// A non-positive perMinute disables limiting.
func NewGenerationRateLimiter(perMinute int) *GenerationRateLimiter {
	rl := &GenerationRateLimiter{
		visitors: make(map[uint]*visitor),
		limit:    rate.Inf,
		burst:    1,
		now:      time.Now,
	}
	if perMinute > 0 {
		rl.interval = time.Minute / time.Duration(perMinute)
		rl.limit = rate.Every(rl.interval)
		rl.burst = perMinute
	}
	return rl
}

// Allow reports whether the user may make another request now.
func (rl *GenerationRateLimiter) Allow(userID uint) bool {
	now := rl.now()
	rl.mu.Lock()
	v, ok := rl.visitors[userID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[userID] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()
	return v.limiter.AllowN(now, 1)
}

// Run evicts idle users every few minutes until ctx is done.
func (rl *GenerationRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops limiters idle for longer than limiterIdleTTL. An evicted user starts again
// with a full bucket, which an idle user would have refilled to anyway.
func (rl *GenerationRateLimiter) sweep() {
	cutoff := rl.now().Add(-limiterIdleTTL)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, id)
		}
	}
}

func (rl *GenerationRateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Middleware returns an echo middleware; it must run after JWTAuthMiddleware.
func (rl *GenerationRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(UserContextKey).(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !rl.Allow(claims.UserID) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many generation requests, please slow down")
			}
			return next(c)
		}
	}
}

// retryAfterSeconds is the time until one more token is available, rounded up
func (rl *GenerationRateLimiter) retryAfterSeconds() int {
	secs := int(math.Ceil(rl.interval.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
