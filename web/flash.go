package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "gameclub_flash"
	flashMaxAge = 60 // seconds; only has to survive one redirect

	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Kind string `json:"k"`
	Text string `json:"t"`
}

func Success(text string) *Flash { return &Flash{Kind: FlashSuccess, Text: text} }
func Error(text string) *Flash   { return &Flash{Kind: FlashError, Text: text} }

// SetFlash stores f in a short-lived cookie on the response, usually a redirect.
func SetFlash(c *gin.Context, f *Flash) {
	if f == nil || f.Text == "" {
		return
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), flashMaxAge, "/", "", false, true)
}

// PopFlash returns the pending message, if any, and clears it so it is shown once.
func PopFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Text == "" {
		return nil
	}
	if f.Kind != FlashSuccess {
		f.Kind = FlashError
	}
	return &f
}
