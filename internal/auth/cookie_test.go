package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", 0)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookie || c.Value != "tok" {
		t.Fatalf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteNoneMode {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}
	if !c.Expires.IsZero() {
		t.Fatal("zero ttl should produce a session cookie without Expires")
	}
}

func TestSetSessionCookieTTL(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", time.Hour)
	c := rec.Result().Cookies()[0]
	if c.Expires.IsZero() {
		t.Fatal("positive ttl should set Expires")
	}
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec)
	c := rec.Result().Cookies()[0]
	if c.Name != SessionCookie || c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("clear cookie wrong: %+v", c)
	}
}
