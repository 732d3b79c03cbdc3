package auth

import (
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	tok, err := tm.Issue("user-1", true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := tm.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-1" || !claims.IsAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.ExpiresAt != nil {
		t.Fatal("zero ttl should not set an expiry")
	}
}

func TestTokenRejection(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	tok, _ := tm.Issue("user-1", false)

	other := NewTokenManager("different-secret", 0)
	if _, err := other.Parse(tok); err != ErrInvalidToken {
		t.Fatalf("wrong secret: got %v, want ErrInvalidToken", err)
	}
	if _, err := tm.Parse("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("malformed: got %v, want ErrInvalidToken", err)
	}
	if _, err := tm.Parse(""); err != ErrInvalidToken {
		t.Fatalf("empty: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("secret", time.Nanosecond)
	tok, err := tm.Issue("user-1", false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := tm.Parse(tok); err != ErrInvalidToken {
		t.Fatalf("expired token: got %v, want ErrInvalidToken", err)
	}
}
