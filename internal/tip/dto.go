// AngelaMos | 2026
// dto.go

package tip

import (
	"time"
)

type CreateTipRequest struct {
	Title       string    `json:"title"       validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required,min=1,max=5000"`
	Sport       string    `json:"sport"       validate:"required,min=1,max=100"`
	MatchDate   time.Time `json:"matchDate"   validate:"required"`
	Odds        *float64  `json:"odds"        validate:"omitempty,gt=1"`
	Prediction  *string   `json:"prediction"  validate:"omitempty,max=500"`
	IsPremium   bool      `json:"isPremium"`
}

type UpdateTipRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,min=1,max=5000"`
	Sport       *string    `json:"sport"       validate:"omitempty,min=1,max=100"`
	MatchDate   *time.Time `json:"matchDate"`
	Odds        *float64   `json:"odds"        validate:"omitempty,gt=1"`
	Prediction  *string    `json:"prediction"  validate:"omitempty,max=500"`
	IsPremium   *bool      `json:"isPremium"`
}

// CreateReviewRequest carries no range rule on Rating: any int is
// accepted at the boundary and clamped to [1,5] by the service.
type CreateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

type ListTipsParams struct {
	Sport     string
	TipsterID string
	Status    string
}

type UserSummary struct {
	ID        string `json:"id"        db:"id"`
	Email     string `json:"email"     db:"email"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName"  db:"last_name"`
}

type ReviewResponse struct {
	ID        string       `json:"id"`
	TipID     string       `json:"tipId"`
	UserID    string       `json:"userId"`
	Rating    int          `json:"rating"`
	Comment   *string      `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
	User      *UserSummary `json:"user,omitempty"`
}

type TipResponse struct {
	ID          string           `json:"id"`
	TipsterID   string           `json:"tipsterId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Sport       string           `json:"sport"`
	MatchDate   time.Time        `json:"matchDate"`
	Odds        *float64         `json:"odds"`
	Prediction  *string          `json:"prediction"`
	IsPremium   bool             `json:"isPremium"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Tipster     *UserSummary     `json:"tipster,omitempty"`
	Reviews     []ReviewResponse `json:"reviews,omitempty"`
}

type TipListResponse struct {
	Tips []TipResponse `json:"tips"`
}

func toTipResponse(t *Tip, tipster *UserSummary) TipResponse {
	return TipResponse{
		ID:          t.ID,
		TipsterID:   t.TipsterID,
		Title:       t.Title,
		Description: t.Description,
		Sport:       t.Sport,
		MatchDate:   t.MatchDate,
		Odds:        t.Odds,
		Prediction:  t.Prediction,
		IsPremium:   t.IsPremium,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Tipster:     tipster,
	}
}

func toReviewResponse(rv *Review, author *UserSummary) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		TipID:     rv.TipID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		User:      author,
	}
}
