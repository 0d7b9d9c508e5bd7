// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

type verifierStub struct {
	claims map[string]*AccessTokenClaims
}

func (v *verifierStub) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*AccessTokenClaims, error) {
	claims, ok := v.claims[token]
	if !ok {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func newVerifier() *verifierStub {
	return &verifierStub{claims: map[string]*AccessTokenClaims{
		"user-token":    {UserID: "user-1", Role: "USER"},
		"tipster-token": {UserID: "tipster-1", Role: "TIPSTER"},
		"admin-token":   {UserID: "admin-1", Role: "ADMIN"},
	}}
}

func protectedChain(roles ...string) http.Handler {
	var seen http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-User", GetUserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}

	handler := RequireRole(roles...)(seen)
	return Authenticator(newVerifier())(handler)
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator_MissingCredential(t *testing.T) {
	rec := doRequest(protectedChain(), "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["message"]; !ok {
		t.Fatal("error body missing message field")
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	rec := doRequest(protectedChain(), "garbage")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole_DisallowedRole(t *testing.T) {
	rec := doRequest(protectedChain("TIPSTER", "ADMIN"), "user-token")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRole_AllowedRoleProceeds(t *testing.T) {
	rec := doRequest(protectedChain("TIPSTER", "ADMIN"), "tipster-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Seen-User"); got != "tipster-1" {
		t.Fatalf("downstream user id = %q, want tipster-1", got)
	}
}

func TestRequireRole_EmptySetMeansAnyAuthenticated(t *testing.T) {
	rec := doRequest(protectedChain(), "user-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	var next http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := Authenticator(newVerifier())(RequireAdmin(next))

	if rec := doRequest(handler, "admin-token"); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
	if rec := doRequest(handler, "tipster-token"); rec.Code != http.StatusForbidden {
		t.Fatalf("tipster status = %d, want 403", rec.Code)
	}
}

type outageVerifier struct{}

func (outageVerifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*AccessTokenClaims, error) {
	return nil, fmt.Errorf("check blacklist: connection refused")
}

func TestAuthenticator_VerifierOutageIsServerError(t *testing.T) {
	var next http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := Authenticator(outageVerifier{})(next)

	rec := doRequest(handler, "any-token")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "internal server error" {
		t.Fatalf("message = %v, want generic internal error", body["message"])
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if got := ExtractToken(req); got != tc.want {
			t.Fatalf("ExtractToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
