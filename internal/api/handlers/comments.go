package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/middleware"
	"github.com/plumablog/backend/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	var req struct {
		Content string `json:"content"`
		PostID  string `json:"postId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	c, err := h.comments.Create(r.Context(), actor, req.Content, req.PostID, req.UserID)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListForPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Like(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	c, err := h.comments.ToggleLike(r.Context(), actor, chi.URLParam(r, "commentID"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	if err := h.comments.Delete(r.Context(), actor, chi.URLParam(r, "commentID")); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// List serves the admin dashboard view: optional author filter, paginated.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.comments.List(r.Context(), r.URL.Query().Get("userId"), parsePage(r, 16, "order"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
