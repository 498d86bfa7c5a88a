package auth

import "testing"

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("hunter2hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash must not be the plaintext")
	}

	if err := h.Compare(hash, "hunter2hunter2"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Error("expected a mismatch error")
	}
}
