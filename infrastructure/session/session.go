package session

import (
	"net/http"
	"time"
)

const CookieName = "X-Session-Token"

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

var ttl = 12 * time.Hour

// SetTTLHours overrides the session lifetime. Called once at startup from the
// loaded config.
func SetTTLHours(hours int) {
	if hours > 0 {
		ttl = time.Duration(hours) * time.Hour
	}
}

func DefaultExpiry() time.Time {
	return time.Now().Add(ttl)
}
