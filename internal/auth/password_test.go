package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("hunter2", hash) {
		t.Fatal("CheckPassword rejected the right password")
	}
	if CheckPassword("hunter3", hash) {
		t.Fatal("CheckPassword accepted the wrong password")
	}
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword with zero cost: %v", err)
	}
	if !CheckPassword("pw", hash) {
		t.Fatal("roundtrip failed with default cost")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, _ := HashPassword("same", bcrypt.MinCost)
	h2, _ := HashPassword("same", bcrypt.MinCost)
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}
