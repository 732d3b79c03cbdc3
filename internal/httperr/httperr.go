package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error is the single failure value handlers and services trade in.
// It carries the HTTP status the terminal responder should emit.
type Error struct {
	Status  int    `json:"statusCode"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, msg string) *Error { return &Error{Status: status, Message: msg} }

func BadRequest(msg string) *Error   { return New(http.StatusBadRequest, msg) }
func Unauthorized(msg string) *Error { return New(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(http.StatusForbidden, msg) }
func NotFound(msg string) *Error     { return New(http.StatusNotFound, msg) }
func Internal(msg string) *Error     { return New(http.StatusInternalServerError, msg) }

// From normalizes any error to *Error. Unknown errors (store, codec) become
// 500 without leaking their text; a missing row becomes 404.
func From(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound("Not found")
	}
	return Internal("Internal server error")
}
