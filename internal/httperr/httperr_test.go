package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestFrom(t *testing.T) {
	if he := From(NotFound("User not found")); he.Status != 404 || he.Message != "User not found" {
		t.Fatalf("typed error mangled: %+v", he)
	}
	if he := From(fmt.Errorf("query: %w", pgx.ErrNoRows)); he.Status != 404 {
		t.Fatalf("wrapped ErrNoRows: %+v", he)
	}
	if he := From(errors.New("connection reset")); he.Status != 500 || he.Message != "Internal server error" {
		t.Fatalf("unknown error leaks: %+v", he)
	}
	if he := From(fmt.Errorf("wrapped: %w", Forbidden("no"))); he.Status != 403 {
		t.Fatalf("wrapped typed error: %+v", he)
	}
}
