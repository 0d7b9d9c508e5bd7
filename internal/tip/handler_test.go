// AngelaMos | 2026
// handler_test.go

package tip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/tipster-platform/internal/core"
	"github.com/carterperez-dev/tipster-platform/internal/middleware"
)

type reviewerVerifier struct{}

func (reviewerVerifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	if token == "reviewer-token" {
		return &middleware.AccessTokenClaims{
			UserID: "reviewer-1",
			Role:   "USER",
		}, nil
	}
	return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
}

func newTipServer(repo Repository) http.Handler {
	h := NewHandler(NewService(repo))
	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(reviewerVerifier{}))
	return r
}

func postReview(srv http.Handler, tipID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(
		http.MethodPost,
		"/tips/"+tipID+"/reviews",
		bytes.NewBufferString(body),
	)
	req.Header.Set("Authorization", "Bearer reviewer-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestAddReview_ZeroRatingClampsToOne(t *testing.T) {
	repo := newRepoStub()
	repo.tips["tip-1"] = &Tip{
		ID:        "tip-1",
		TipsterID: "tipster-1",
		Status:    StatusApproved,
	}
	srv := newTipServer(repo)

	rec := postReview(srv, "tip-1", `{"rating": 0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp ReviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Rating != 1 {
		t.Fatalf("rating = %d, want 1", resp.Rating)
	}
	if resp.Comment != nil {
		t.Fatalf("comment = %v, want null", *resp.Comment)
	}
}

func TestAddReview_OverflowRatingClampsToFive(t *testing.T) {
	repo := newRepoStub()
	repo.tips["tip-1"] = &Tip{
		ID:        "tip-1",
		TipsterID: "tipster-1",
		Status:    StatusApproved,
	}
	srv := newTipServer(repo)

	rec := postReview(srv, "tip-1", `{"rating": 9, "comment": "wild"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp ReviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Rating != 5 {
		t.Fatalf("rating = %d, want 5", resp.Rating)
	}
}

func TestAddReview_UnknownTipIs404(t *testing.T) {
	srv := newTipServer(newRepoStub())

	rec := postReview(srv, "ghost", `{"rating": 3}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
