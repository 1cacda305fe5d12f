package middleware

import (
	"net/http"
	"sync"
	"time"

	"bookline/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds one limiter per sender (falling back to client IP
// for requests without a sender field).
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

var limiterStore = &rateLimiterStore{
	limiters: make(map[string]*rate.Limiter),
}

func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		perMin := config.AppConfig.MaxRequestsPerMin
		if perMin <= 0 {
			perMin = 60
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), 5)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware limits inbound messages per sender. One sender
// flooding the webhook cannot starve other dialogues.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.PostForm("From")
		if key == "" {
			key = getClientIP(c)
		}
		limiter := limiterStore.getLimiter(key)
		if !limiter.Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("sender", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
