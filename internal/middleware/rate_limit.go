// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nexcart/storefront/internal/config"
	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	stop     chan struct{}
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		stop:     make(chan struct{}),
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors(time.Minute)

	return rl
}

func (rl *RateLimiter) cleanupVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mtx.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mtx.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			c.String(http.StatusTooManyRequests, i18n.T(utils.GetLangFromContext(c), i18n.KeyRateLimited))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimits holds the per-route-group limiters built from config.
type RateLimits struct {
	General *RateLimiter
	Auth    *RateLimiter
}

// NewRateLimits returns nil limiters when rate limiting is disabled.
func NewRateLimits(cfg config.RateLimitConfig) *RateLimits {
	if !cfg.Enabled {
		return &RateLimits{}
	}

	perSecond := max(cfg.GeneralPerSecond, 1)
	perMinute := max(cfg.AuthPerMinute, 1)

	return &RateLimits{
		General: NewRateLimiter(rate.Limit(perSecond), perSecond),
		Auth:    NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

func (r *RateLimits) GeneralRateLimit() gin.HandlerFunc {
	return limitOrPass(r.General)
}

func (r *RateLimits) AuthRateLimit() gin.HandlerFunc {
	return limitOrPass(r.Auth)
}

func (r *RateLimits) Stop() {
	for _, rl := range []*RateLimiter{r.General, r.Auth} {
		if rl != nil {
			rl.Stop()
		}
	}
}

func limitOrPass(rl *RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}
