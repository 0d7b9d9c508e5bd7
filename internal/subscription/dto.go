// AngelaMos | 2026
// dto.go

package subscription

import (
	"time"
)

type SubscribeRequest struct {
	TipsterID string `json:"tipsterId" validate:"required,uuid4"`
	Plan      string `json:"plan"      validate:"omitempty,max=50"`
}

type UnsubscribeRequest struct {
	TipsterID string `json:"tipsterId" validate:"required,uuid4"`
}

type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

type SubscriptionResponse struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	TipsterID  string       `json:"tipsterId"`
	Plan       string       `json:"plan"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Tipster    *UserSummary `json:"tipster,omitempty"`
	Subscriber *UserSummary `json:"subscriber,omitempty"`
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// StatusResponse carries the row for the pair or null when no relation
// exists, so callers can tell "no relation" apart from a failure.
type StatusResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
}

func toSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		TipsterID: s.TipsterID,
		Plan:      s.Plan,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
