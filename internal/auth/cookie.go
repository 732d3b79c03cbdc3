package auth

import (
	"net/http"
	"time"
)

// SessionCookie is the cookie the frontend stores the session token in.
const SessionCookie = "access_token"

// SetSessionCookie writes the token cookie. HttpOnly + Secure + SameSite=None
// so the browser sends it cross-site but scripts cannot read it. ttl 0 makes
// it a session cookie with no Expires.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	if ttl > 0 {
		c.Expires = time.Now().Add(ttl)
	}
	http.SetCookie(w, c)
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}
