package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// clientTTL is how long an idle client keeps its limiter.
const clientTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool hands out one token bucket per client address and evicts
// idle entries lazily so the map does not grow without bound.
type limiterPool struct {
	mu        sync.Mutex
	cfg       RateLimitConfig
	clients   map[string]*limiterEntry
	lastSweep time.Time
}

func newLimiterPool(cfg RateLimitConfig) *limiterPool {
	return &limiterPool{
		cfg:       cfg,
		clients:   make(map[string]*limiterEntry),
		lastSweep: time.Now(),
	}
}

func (p *limiterPool) get(addr string) *rate.Limiter {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) > clientTTL {
		for a, e := range p.clients {
			if now.Sub(e.lastSeen) > clientTTL {
				delete(p.clients, a)
			}
		}
		p.lastSweep = now
	}

	entry, ok := p.clients[addr]
	if !ok {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(p.cfg.RequestsPerSecond), p.cfg.Burst),
		}
		p.clients[addr] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// RateLimit throttles each client IP with its own token bucket.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	pool := newLimiterPool(cfg)

	return func(c *gin.Context) {
		if !pool.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// GlobalRateLimit throttles all clients through one shared token bucket.
func GlobalRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
