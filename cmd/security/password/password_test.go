package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify_OK(t *testing.T) {
	h, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !Verify("correct horse battery staple", h) {
		t.Fatalf("expected match")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if Verify("wrong password", h) {
		t.Fatalf("expected mismatch")
	}
}

func TestHash_NeverEqualToPlaintext(t *testing.T) {
	const plain = "pw123"
	h, err := Hash(plain)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h == plain {
		t.Fatalf("hash must not equal plaintext")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, err := Hash("same input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := Hash("same input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same plaintext must differ")
	}
	if !Verify("same input", a) || !Verify("same input", b) {
		t.Fatalf("both hashes must verify")
	}
}

func TestHash_TooLong(t *testing.T) {
	if _, err := Hash(strings.Repeat("x", maxPasswordBytes+1)); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	if Verify("whatever", "not-a-bcrypt-hash") {
		t.Fatalf("expected false for malformed hash")
	}
}
