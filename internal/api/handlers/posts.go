package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/middleware"
	repo "github.com/plumablog/backend/internal/repository"
	"github.com/plumablog/backend/internal/services"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	var in services.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	p, err := h.posts.Create(r.Context(), actor, in)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

// List is public; every filter is optional and composes with the rest.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.PostFilter{
		UserID:     q.Get("userId"),
		Category:   q.Get("category"),
		Slug:       q.Get("slug"),
		PostID:     q.Get("postId"),
		SearchTerm: q.Get("searchTerm"),
	}

	res, err := h.posts.List(r.Context(), f, parsePage(r, 4, "order"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	err := h.posts.Delete(r.Context(), actor, chi.URLParam(r, "userID"), chi.URLParam(r, "postID"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	var in services.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	p, err := h.posts.Update(r.Context(), actor, chi.URLParam(r, "userID"), chi.URLParam(r, "postID"), in)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
