package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := NewScryptHasher()

	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.Contains(encoded, ".") {
		t.Fatalf("expected key.salt form, got %q", encoded)
	}

	ok, err := h.Verify("correct horse battery staple", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for the original password")
	}

	ok, err = h.Verify("wrong password", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch for a different password")
	}
}

func TestHashSaltsEachCall(t *testing.T) {
	h := NewScryptHasher()

	first, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}

	for _, encoded := range []string{first, second} {
		ok, err := h.Verify("s3cret", encoded)
		if err != nil || !ok {
			t.Fatalf("expected both hashes to verify, ok=%v err=%v", ok, err)
		}
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h := NewScryptHasher()
	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	h := NewScryptHasher()

	for _, encoded := range []string{
		"",
		"no-separator",
		"nothex.deadbeef",
		"deadbeef.nothex",
		".deadbeef",
		"deadbeef.",
	} {
		ok, err := h.Verify("anything", encoded)
		if ok {
			t.Fatalf("malformed hash %q must never verify", encoded)
		}
		if !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("expected ErrMalformedHash for %q, got %v", encoded, err)
		}
	}
}
