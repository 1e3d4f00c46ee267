package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// per-IP limiter for the login endpoint; dampens credential stuffing
type ipLimiters struct {
	mu    sync.Mutex
	perIP map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.perIP[ip]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.perIP[ip] = lim
	}
	return lim
}

func LoginRateLimit() gin.HandlerFunc {
	limiters := &ipLimiters{
		perIP: map[string]*rate.Limiter{},
		limit: rate.Every(time.Second),
		burst: 5,
	}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many login attempts",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
