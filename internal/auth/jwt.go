package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller as seen by handlers and services.
type Identity struct {
	ID      string
	IsAdmin bool
}

type Claims struct {
	UserID  string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens. A zero ttl issues
// tokens without an exp claim.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (tm *TokenManager) Issue(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if tm.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tm.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Parse verifies signature and structure. Every failure collapses to
// ErrInvalidToken so callers cannot distinguish malformed from forged.
func (tm *TokenManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
