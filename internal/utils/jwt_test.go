package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundtrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "Dean", "", "Engineering", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["role"] != "Dean" {
		t.Errorf("role claim = %v, want Dean", claims["role"])
	}
	if claims["school_id"] != "Engineering" {
		t.Errorf("school_id claim = %v, want Engineering", claims["school_id"])
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub claim = %v, want 42", claims["sub"])
	}
	if time.Until(at.Exp) > 15*time.Minute {
		t.Errorf("expiry too far in the future: %v", at.Exp)
	}
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "HOD", "CS", "Engineering", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil && tok.Valid {
		t.Fatal("token validated under the wrong secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96 hex chars", len(rt.Raw))
	}
	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	if h1 != h2 {
		t.Fatal("hash not deterministic")
	}
	if h1 == rt.Raw {
		t.Fatal("hash equals raw token")
	}
	other, _ := NewRefreshToken(7)
	if HashRefreshRaw(other.Raw) == h1 {
		t.Fatal("distinct tokens produced identical hashes")
	}
}

func TestPasswordHashVerify(t *testing.T) {
	hash, err := HashPassword("password123", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "password123") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "password124") {
		t.Fatal("wrong password accepted")
	}
}
