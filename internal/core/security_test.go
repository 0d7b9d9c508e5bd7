// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Fatal("correct password should verify")
	}

	ok, err = VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatal("wrong password should not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPasswordTimingSafe_NilHash(t *testing.T) {
	ok, _, err := VerifyPasswordTimingSafe("anything", nil)
	if err != nil {
		t.Fatalf("timing-safe verify with nil hash: %v", err)
	}
	if ok {
		t.Fatal("nil hash must never verify")
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	token, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	hash := HashToken(token)
	if hash == token {
		t.Fatal("hash should not equal the raw token")
	}
	if HashToken(token) != hash {
		t.Fatal("token hash should be deterministic")
	}
	if !CompareTokenHash(token, hash) {
		t.Fatal("token should match its own hash")
	}
	if CompareTokenHash("other-token", hash) {
		t.Fatal("different token should not match the hash")
	}
}
