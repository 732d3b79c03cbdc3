package handlers

import (
	"net/http"
	"strconv"

	repo "github.com/plumablog/backend/internal/repository"
)

// parsePage reads startIndex/limit plus the sort-direction query param
// (posts and comments use "order", users use "sort"). Anything unparsable
// falls back to the defaults; direction defaults to descending.
func parsePage(r *http.Request, defaultLimit int, orderParam string) repo.Page {
	p := repo.Page{Limit: defaultLimit}
	if v := r.URL.Query().Get("startIndex"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	p.Asc = r.URL.Query().Get(orderParam) == "asc"
	return p
}
