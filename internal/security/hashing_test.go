package security

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash([]byte("482913"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "482913" {
		t.Fatal("hash should be non-empty and not the plaintext code")
	}
	if err := h.Compare(hash, []byte("482913")); err != nil {
		t.Errorf("Compare with correct code: %v", err)
	}
	if err := h.Compare(hash, []byte("000000")); !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Errorf("Compare with wrong code = %v, want mismatch", err)
	}
}

func TestNewHasher_CostClamping(t *testing.T) {
	if c := NewHasher(0).Cost; c != bcrypt.DefaultCost {
		t.Errorf("cost for 0 = %d, want default %d", c, bcrypt.DefaultCost)
	}
	if c := NewHasher(2).Cost; c != bcrypt.MinCost {
		t.Errorf("cost for 2 = %d, want min %d", c, bcrypt.MinCost)
	}
	if c := NewHasher(99).Cost; c != bcrypt.MaxCost {
		t.Errorf("cost for 99 = %d, want max %d", c, bcrypt.MaxCost)
	}
}
