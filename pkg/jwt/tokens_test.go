package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(42, "secret", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := Parse(token, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("parse subject: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id = %d, want 42", id)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "secret", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse(token, "other"); err == nil {
		t.Fatalf("expected signature failure")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken(42, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse(token, "secret"); err == nil {
		t.Fatalf("expected expiry failure")
	}
}
