package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordProducesDistinctDigests(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if first == "secret123" || second == "secret123" {
		t.Fatal("digest must not equal the plaintext")
	}
	if first == second {
		t.Error("two hashes of the same password should differ by salt")
	}
	if !strings.HasPrefix(first, "$2") {
		t.Errorf("expected a bcrypt digest, got %q", first)
	}

	if !CheckPassword(first, "secret123") {
		t.Error("first digest did not verify against the original password")
	}
	if !CheckPassword(second, "secret123") {
		t.Error("second digest did not verify against the original password")
	}
}

func TestCheckPasswordRejectsWrongPassword(t *testing.T) {
	digest, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if CheckPassword(digest, "secret124") {
		t.Error("wrong password verified")
	}
	if CheckPassword(digest, "") {
		t.Error("empty password verified")
	}
}

func TestCheckPasswordRejectsMalformedDigest(t *testing.T) {
	if CheckPassword("not-a-bcrypt-digest", "secret123") {
		t.Error("malformed digest verified")
	}
	if CheckPassword("", "secret123") {
		t.Error("empty digest verified")
	}
}
