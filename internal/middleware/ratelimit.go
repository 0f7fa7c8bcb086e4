package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"eod-extractor/pkg/response"
)

const (
	maxTrackedClients = 1000
	clientTTL         = 5 * time.Minute
)

// RateLimit enforces a per-client request budget. Limiters live in an
// expiring LRU so idle clients stop costing memory. A zero per-minute
// limit disables the middleware.
func (m Middleware) RateLimit() gin.HandlerFunc {
	perMinute := m.cfg.RateLimitPerMin
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, clientTTL)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter, ok := limiters.Get(ip)
		if !ok {
			// Concurrent first requests from one ip may both Add here;
			// the replaced limiter only costs a little extra burst.
			limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
			limiters.Add(ip, limiter)
		}

		if !limiter.Allow() {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
