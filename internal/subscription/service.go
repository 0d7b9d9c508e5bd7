// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

// UserDirectory resolves tipster ids against the identity store.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Subscribe creates an ACTIVE subscription for the pair. It fails on
// self-subscription, on an unresolvable tipster, and when any row for
// the pair already exists, whatever its status.
func (s *Service) Subscribe(
	ctx context.Context,
	userID string,
	req SubscribeRequest,
) (*SubscriptionResponse, error) {
	if userID == req.TipsterID {
		return nil, fmt.Errorf("subscribe: %w", core.ErrSelfSubscription)
	}

	exists, err := s.users.Exists(ctx, req.TipsterID)
	if err != nil {
		return nil, fmt.Errorf("resolve tipster: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("subscribe: tipster: %w", core.ErrNotFound)
	}

	plan := req.Plan
	if plan == "" {
		plan = DefaultPlan
	}

	sub := &Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		TipsterID: req.TipsterID,
		Plan:      plan,
		Status:    StatusActive,
	}

	if err := s.repo.Subscribe(ctx, sub); err != nil {
		return nil, err
	}

	row, err := s.repo.GetWithTipster(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	resp := toSubscriptionResponse(&row.Subscription)
	resp.Tipster = tipsterSummary(row)

	return &resp, nil
}

// Unsubscribe transitions the pair's row to CANCELLED. The row is never
// deleted, so repeating the call still succeeds.
func (s *Service) Unsubscribe(
	ctx context.Context,
	userID, tipsterID string,
) (*SubscriptionResponse, error) {
	sub, err := s.repo.GetByPair(ctx, userID, tipsterID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, sub.ID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	resp := toSubscriptionResponse(updated)

	return &resp, nil
}

// ListSubscriptions returns every row where the user is the subscriber,
// CANCELLED included.
func (s *Service) ListSubscriptions(
	ctx context.Context,
	userID string,
) ([]SubscriptionResponse, error) {
	rows, err := s.repo.ListBySubscriber(ctx, userID)
	if err != nil {
		return nil, err
	}

	subs := make([]SubscriptionResponse, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		resp := toSubscriptionResponse(&row.Subscription)
		resp.Tipster = tipsterSummary(row)
		subs = append(subs, resp)
	}

	return subs, nil
}

func (s *Service) ListSubscribers(
	ctx context.Context,
	tipsterID string,
) ([]SubscriptionResponse, error) {
	rows, err := s.repo.ListByTipster(ctx, tipsterID)
	if err != nil {
		return nil, err
	}

	subs := make([]SubscriptionResponse, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		resp := toSubscriptionResponse(&row.Subscription)
		resp.Subscriber = &UserSummary{
			ID:        row.UserID,
			Email:     row.SubscriberEmail,
			FirstName: row.SubscriberFirstName,
			LastName:  row.SubscriberLastName,
		}
		subs = append(subs, resp)
	}

	return subs, nil
}

// GetStatus returns the row for the pair, or nil with no error when no
// relation exists.
func (s *Service) GetStatus(
	ctx context.Context,
	userID, tipsterID string,
) (*SubscriptionResponse, error) {
	sub, err := s.repo.GetByPair(ctx, userID, tipsterID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := toSubscriptionResponse(sub)

	return &resp, nil
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

func tipsterSummary(row *SubscriptionWithTipster) *UserSummary {
	return &UserSummary{
		ID:        row.TipsterID,
		Email:     row.TipsterEmail,
		FirstName: row.TipsterFirstName,
		LastName:  row.TipsterLastName,
		Role:      row.TipsterRole,
	}
}
