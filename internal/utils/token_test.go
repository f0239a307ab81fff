package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("test-secret", 42, "ORGANIZER", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v valid=%v", err, tok != nil && tok.Valid)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["role"] != "ORGANIZER" {
		t.Fatalf("role claim = %v", claims["role"])
	}
	if sub, ok := claims["sub"].(float64); !ok || uint64(sub) != 42 {
		t.Fatalf("sub claim = %v", claims["sub"])
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "ORGANIZER", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	}); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96 hex chars", len(rt.Raw))
	}
	h1, h2 := HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw)
	if h1 != h2 {
		t.Fatal("hash must be deterministic")
	}
	if h1 == rt.Raw {
		t.Fatal("stored hash must differ from the raw token")
	}
	if HashRefreshRaw("other") == h1 {
		t.Fatal("different tokens must not collide trivially")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Fatal("wrong password accepted")
	}
}
