package auth

import (
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("topspin-lob-42")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("hash = %q, want bcrypt format", hash)
	}
	if !VerifyPassword(hash, "topspin-lob-42") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "topspin-lob-43") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-hash", "topspin-lob-42") {
		t.Error("malformed hash accepted")
	}
}
