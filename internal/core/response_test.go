// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestJSONError_AppErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthorized", UnauthorizedError("missing token"), http.StatusUnauthorized},
		{"forbidden", ForbiddenError("insufficient permissions"), http.StatusForbidden},
		{"not found", NotFoundError("tip"), http.StatusNotFound},
		{"validation", ValidationError("bad field"), http.StatusBadRequest},
		{"duplicate", DuplicateError("email"), http.StatusConflict},
		{"token expired", TokenExpiredError(), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSONError(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			body := decodeError(t, rec)
			if body.Message == "" {
				t.Fatal("error body missing message")
			}
		})
	}
}

func TestJSONError_UnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("disk on fire"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	// Internal detail must not leak to the client.
	body := decodeError(t, rec)
	if body.Message == "disk on fire" {
		t.Fatal("internal error message leaked to client")
	}
}

func TestAppError_UnwrapsSentinel(t *testing.T) {
	err := fmt.Errorf("subscribe: %w", ErrAlreadySubscribed)
	appErr := NewAppError(err, "already subscribed", http.StatusBadRequest, "")

	if !errors.Is(appErr, ErrAlreadySubscribed) {
		t.Fatal("AppError should unwrap to its sentinel")
	}
}

func TestNotFound_ResourceName(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "subscription")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	body := decodeError(t, rec)
	if body.Message != "subscription not found" {
		t.Fatalf("message = %q, want %q", body.Message, "subscription not found")
	}
}
