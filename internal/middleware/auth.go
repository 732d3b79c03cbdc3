package middleware

import (
	"context"
	"net/http"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
)

type identityKey struct{}

// IdentityFrom returns the authenticated caller attached by Auth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(auth.Identity)
	return v, ok
}

// WithIdentity is exported for handler tests.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

type AuthMiddleware struct {
	tm *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tm: tm}
}

// Auth gates a route on the session cookie. No cookie means 401 without
// touching the codec; a bad token means 401. The middleware never mutates
// persisted state.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(auth.SessionCookie)
		if err != nil || c.Value == "" {
			httpx.Fail(w, httperr.Unauthorized("Unauthorized"))
			return
		}
		claims, err := m.tm.Parse(c.Value)
		if err != nil {
			httpx.Fail(w, httperr.Unauthorized("Unauthorized"))
			return
		}
		ctx := WithIdentity(r.Context(), auth.Identity{ID: claims.UserID, IsAdmin: claims.IsAdmin})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
