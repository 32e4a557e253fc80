package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"gameclub/utils"
)

const (
	CSRFFormField = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
	csrfTokenTTL  = time.Hour
)

var (
	csrfTokens  = make(map[string]time.Time)
	csrfMutex   = &sync.RWMutex{}
	lastCleanup time.Time
)

// GenerateCSRFToken issues a token valid for one hour. Forms embed it in a hidden field.
func GenerateCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		utils.LogError("csrf: random source failed", map[string]interface{}{"error": err.Error()})
	}
	token := base64.URLEncoding.EncodeToString(b)

	csrfMutex.Lock()
	defer csrfMutex.Unlock()
	csrfTokens[token] = time.Now()
	if time.Since(lastCleanup) > time.Minute {
		cleanupExpiredTokens()
	}
	return token
}

// ActiveCSRFTokens reports how many issued tokens are still stored.
func ActiveCSRFTokens() int {
	csrfMutex.RLock()
	defer csrfMutex.RUnlock()
	return len(csrfTokens)
}

// cleanupExpiredTokens must run with csrfMutex held.
func cleanupExpiredTokens() {
	now := time.Now()
	lastCleanup = now
	for token, created := range csrfTokens {
		if now.Sub(created) > csrfTokenTTL {
			delete(csrfTokens, token)
		}
	}
}

// CSRFProtection rejects state-changing requests without a live token.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		token := c.GetHeader(CSRFHeader)
		if token == "" {
			token = c.PostForm(CSRFFormField)
		}
		if token == "" {
			rejectCSRF(c, "CSRF token missing")
			return
		}

		csrfMutex.RLock()
		created, exists := csrfTokens[token]
		csrfMutex.RUnlock()

		if !exists {
			rejectCSRF(c, "Invalid CSRF token")
			return
		}
		if time.Since(created) > csrfTokenTTL {
			csrfMutex.Lock()
			delete(csrfTokens, token)
			csrfMutex.Unlock()
			rejectCSRF(c, "CSRF token expired")
			return
		}

		c.Next()
	}
}

func rejectCSRF(c *gin.Context, reason string) {
	utils.LogWarn("CSRF check failed", map[string]interface{}{
		"path":   c.Request.URL.Path,
		"ip":     c.ClientIP(),
		"reason": reason,
	})
	c.String(http.StatusForbidden, reason)
	c.Abort()
}
