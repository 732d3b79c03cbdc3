package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/services"
)

// AuthHandler owns the unauthenticated entry points: signup, signin and the
// federated sign-in-or-create. All three set the session cookie on success.
type AuthHandler struct {
	users    *services.UserService
	tokenTTL time.Duration
}

func NewAuthHandler(users *services.UserService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	u, token, err := h.users.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	auth.SetSessionCookie(w, token, h.tokenTTL)
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	u, token, err := h.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	auth.SetSessionCookie(w, token, h.tokenTTL)
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email"`
		Name           string `json:"name"`
		GooglePhotoURL string `json:"googlePhotoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, httperr.BadRequest("Invalid request body"))
		return
	}

	u, token, err := h.users.Google(r.Context(), req.Email, req.Name, req.GooglePhotoURL)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	auth.SetSessionCookie(w, token, h.tokenTTL)
	httpx.WriteJSON(w, http.StatusOK, u)
}
