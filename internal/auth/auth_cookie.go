package auth

import (
	"net/http"
	"time"

	"github.com/SukhanRumanov/prac3/internal/auth/gate"

	"github.com/gin-gonic/gin"
)

type CookieConfig struct {
	Secure bool
}

// SetSessionCookie stores the access token for browser clients.
func SetSessionCookie(c *gin.Context, value string, expiresAt time.Time, cfg CookieConfig) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     gate.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     gate.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
