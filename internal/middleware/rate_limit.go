// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP. Buckets idle for
// longer than staleAfter are dropped by a background sweep so the map does
// not grow with every visitor the server has ever seen.
type ipLimiter struct {
	name    string
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const staleAfter = 3 * time.Minute

func newIPLimiter(name string, limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		name:    name,
		limit:   limit,
		burst:   burst,
		buckets: make(map[string]*bucket),
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > staleAfter {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			logrus.WithFields(logrus.Fields{
				"limiter": l.name,
				"ip":      ip,
				"path":    c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	generalLimiter = newIPLimiter("general", rate.Every(100*time.Millisecond), 10) // 10 req/s
	authLimiter    = newIPLimiter("auth", rate.Every(12*time.Second), 5)           // 5 per minute
	uploadLimiter  = newIPLimiter("upload", rate.Every(6*time.Second), 10)         // 10 per minute
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.handler()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.handler()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.handler()
}
