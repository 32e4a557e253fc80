package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gameclub/cache"
	"gameclub/utils"
)

// WriteRateLimit caps POST requests per client IP using Redis counters.
// It lets everything through when maxWrites is zero or Redis is down.
func WriteRateLimit(maxWrites int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxWrites <= 0 || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		allowed, remaining, retryAfter, err := cache.CheckRateLimit("ip:"+c.ClientIP(), maxWrites, window)
		if err != nil {
			utils.LogWarn("rate limit check failed", map[string]interface{}{"error": err.Error()})
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxWrites))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			utils.LogWarn("write rate limit exceeded", map[string]interface{}{
				"ip":   c.ClientIP(),
				"path": c.Request.URL.Path,
			})
			c.String(http.StatusTooManyRequests, "Too many changes in a short time, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
