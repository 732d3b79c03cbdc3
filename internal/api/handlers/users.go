package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/middleware"
	"github.com/plumablog/backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Test is the liveness check.
func (h *UserHandler) Test(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "it works"})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	var in services.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	u, err := h.users.Update(r.Context(), actor.ID, chi.URLParam(r, "userID"), in)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	if err := h.users.Delete(r.Context(), actor.ID, chi.URLParam(r, "userID")); err != nil {
		httpx.Fail(w, err)
		return
	}
	auth.ClearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, "User has been deleted")
}

// DeleteAsAdmin removes someone else's account; the admin keeps their own
// session cookie.
func (h *UserHandler) DeleteAsAdmin(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	if err := h.users.DeleteAsAdmin(r.Context(), actor, chi.URLParam(r, "userID")); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, "User has been deleted")
}

func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, "Logged out")
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())

	res, err := h.users.List(r.Context(), actor, parsePage(r, 16, "sort"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
