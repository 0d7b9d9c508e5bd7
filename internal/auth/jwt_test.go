// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/carterperez-dev/tipster-platform/internal/config"
	"github.com/carterperez-dev/tipster-platform/internal/core"
)

func newTestJWTManager(t *testing.T, accessExpire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privatePath, publicPath); err != nil {
		t.Fatalf("generate key pair: %v", err)
	}

	mgr, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privatePath,
		PublicKeyPath:      publicPath,
		AccessTokenExpire:  accessExpire,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "tipster-platform",
		Audience:           "tipster-platform-api",
	})
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	return mgr
}

func TestAccessToken_RoundTrip(t *testing.T) {
	mgr := newTestJWTManager(t, 15*time.Minute)

	token, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Role:         "TIPSTER",
		TokenVersion: 3,
	})
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	claims, err := mgr.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Fatalf("user id = %q, want user-1", claims.UserID)
	}
	if claims.Role != "TIPSTER" {
		t.Fatalf("role = %q, want TIPSTER", claims.Role)
	}
	if claims.TokenVersion != 3 {
		t.Fatalf("token version = %d, want 3", claims.TokenVersion)
	}
	if claims.JTI == "" {
		t.Fatal("expected a jti claim")
	}
	if claims.ExpiresAt.Before(time.Now()) {
		t.Fatal("expiry should be in the future")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	mgr := newTestJWTManager(t, -time.Minute)

	token, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   "USER",
	})
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	if _, err := mgr.ParseAccessToken(token); !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	mgr := newTestJWTManager(t, 15*time.Minute)

	_, err := mgr.ParseAccessToken("not-a-jwt")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestParseAccessToken_WrongKey(t *testing.T) {
	issuer := newTestJWTManager(t, 15*time.Minute)
	other := newTestJWTManager(t, 15*time.Minute)

	token, err := issuer.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   "USER",
	})
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	if _, err := other.ParseAccessToken(token); !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestCreateRefreshToken_NewFamily(t *testing.T) {
	mgr := newTestJWTManager(t, 15*time.Minute)

	data, err := mgr.CreateRefreshToken("user-1", "")
	if err != nil {
		t.Fatalf("create refresh token: %v", err)
	}

	if data.Token == "" || data.Hash == "" {
		t.Fatal("expected token and hash to be populated")
	}
	if data.FamilyID == "" {
		t.Fatal("expected a fresh family id")
	}
	if core.HashToken(data.Token) != data.Hash {
		t.Fatal("hash should match the token")
	}

	rotated, err := mgr.CreateRefreshToken("user-1", data.FamilyID)
	if err != nil {
		t.Fatalf("rotate refresh token: %v", err)
	}
	if rotated.FamilyID != data.FamilyID {
		t.Fatalf(
			"family id = %q, want %q (rotation keeps the family)",
			rotated.FamilyID,
			data.FamilyID,
		)
	}
}
