// Package middleware holds the gin middleware mounted in front of the
// geocoding routes.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestLogger logs every request with its status and latency.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// IPRateLimiter keeps one token bucket per client IP. Buckets are never
// evicted, so memory grows with the number of distinct clients seen since
// startup.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	logger   zerolog.Logger
}

// NewIPRateLimiter creates a limiter allowing r requests per second per IP
// with bursts of up to burst requests.
func NewIPRateLimiter(r float64, burst int, logger zerolog.Logger) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		rate:   rate.Limit(r),
		burst:  burst,
		logger: logger,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := i.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := i.limiters.LoadOrStore(ip, rate.NewLimiter(i.rate, i.burst))
	return limiter.(*rate.Limiter)
}

// RateLimit returns a middleware answering 429 once the caller's bucket is empty.
// A non-positive rate disables limiting.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if i.rate <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !i.getLimiter(ip).Allow() {
			i.logger.Warn().
				Str("client_ip", ip).
				Str("path", c.Request.URL.Path).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
