// AngelaMos | 2026
// service.go

package tip

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTip(
	ctx context.Context,
	tipsterID string,
	req CreateTipRequest,
) (*TipResponse, error) {
	t := &Tip{
		ID:          uuid.New().String(),
		TipsterID:   tipsterID,
		Title:       req.Title,
		Description: req.Description,
		Sport:       req.Sport,
		MatchDate:   req.MatchDate,
		Odds:        req.Odds,
		Prediction:  req.Prediction,
		IsPremium:   req.IsPremium,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	row, err := s.repo.GetWithTipster(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	resp := toTipResponse(&row.Tip, tipsterSummary(row))

	return &resp, nil
}

func (s *Service) GetTip(ctx context.Context, tipID string) (*TipResponse, error) {
	row, err := s.repo.GetWithTipster(ctx, tipID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListReviewsForTip(ctx, tipID)
	if err != nil {
		return nil, err
	}

	resp := toTipResponse(&row.Tip, tipsterSummary(row))
	resp.Reviews = make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		rv := &reviews[i]
		resp.Reviews = append(resp.Reviews, toReviewResponse(&rv.Review, &UserSummary{
			ID:        rv.UserID,
			Email:     rv.UserEmail,
			FirstName: rv.UserFirstName,
			LastName:  rv.UserLastName,
		}))
	}

	return &resp, nil
}

func (s *Service) ListTips(
	ctx context.Context,
	params ListTipsParams,
) ([]TipResponse, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	tips := make([]TipResponse, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		tips = append(tips, toTipResponse(&row.Tip, tipsterSummary(row)))
	}

	return tips, nil
}

// UpdateTip checks existence before ownership so a missing tip is a 404,
// not a 403.
func (s *Service) UpdateTip(
	ctx context.Context,
	tipID, actorID, actorRole string,
	req UpdateTipRequest,
) (*TipResponse, error) {
	t, err := s.repo.GetByID(ctx, tipID)
	if err != nil {
		return nil, err
	}

	if !CanMutate(actorID, actorRole, t.TipsterID) {
		return nil, fmt.Errorf("update tip: %w", core.ErrForbidden)
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Sport != nil {
		t.Sport = *req.Sport
	}
	if req.MatchDate != nil {
		t.MatchDate = *req.MatchDate
	}
	if req.Odds != nil {
		t.Odds = req.Odds
	}
	if req.Prediction != nil {
		t.Prediction = req.Prediction
	}
	if req.IsPremium != nil {
		t.IsPremium = *req.IsPremium
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	row, err := s.repo.GetWithTipster(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	resp := toTipResponse(&row.Tip, tipsterSummary(row))

	return &resp, nil
}

func (s *Service) DeleteTip(
	ctx context.Context,
	tipID, actorID, actorRole string,
) error {
	t, err := s.repo.GetByID(ctx, tipID)
	if err != nil {
		return err
	}

	if !CanMutate(actorID, actorRole, t.TipsterID) {
		return fmt.Errorf("delete tip: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, tipID)
}

func (s *Service) UpdateTipStatus(
	ctx context.Context,
	tipID, status string,
) (*TipResponse, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("update tip status: %w", core.ErrInvalidInput)
	}

	t, err := s.repo.UpdateStatus(ctx, tipID, status)
	if err != nil {
		return nil, err
	}

	resp := toTipResponse(t, nil)

	return &resp, nil
}

// AddReview clamps the rating into [1,5] rather than rejecting it.
// An absent comment stays null.
func (s *Service) AddReview(
	ctx context.Context,
	tipID, userID string,
	req CreateReviewRequest,
) (*ReviewResponse, error) {
	if _, err := s.repo.GetByID(ctx, tipID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:      uuid.New().String(),
		TipID:   tipID,
		UserID:  userID,
		Rating:  ClampRating(req.Rating),
		Comment: req.Comment,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	resp := toReviewResponse(review, nil)

	return &resp, nil
}

func (s *Service) CountTips(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountReviews(ctx context.Context) (int, error) {
	return s.repo.CountReviews(ctx)
}

func tipsterSummary(row *TipWithTipster) *UserSummary {
	return &UserSummary{
		ID:        row.TipsterID,
		Email:     row.TipsterEmail,
		FirstName: row.TipsterFirstName,
		LastName:  row.TipsterLastName,
	}
}
