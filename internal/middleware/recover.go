package middleware

import (
	"log/slog"
	"net/http"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/httperr"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "path", r.URL.Path)
				httpx.Fail(w, httperr.Internal("Internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
