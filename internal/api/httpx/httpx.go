package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/plumablog/backend/internal/httperr"
)

// ErrorBody is the uniform failure envelope every endpoint emits.
type ErrorBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail is the terminal responder: any error a handler ends with goes through
// here and nowhere else.
func Fail(w http.ResponseWriter, err error) {
	he := httperr.From(err)
	WriteJSON(w, he.Status, ErrorBody{Success: false, StatusCode: he.Status, Message: he.Message})
}
