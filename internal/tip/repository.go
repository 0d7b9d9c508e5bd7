// AngelaMos | 2026
// repository.go

package tip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

type TipWithTipster struct {
	Tip
	TipsterEmail     string `db:"tipster_email"`
	TipsterFirstName string `db:"tipster_first_name"`
	TipsterLastName  string `db:"tipster_last_name"`
}

type ReviewWithUser struct {
	Review
	UserEmail     string `db:"user_email"`
	UserFirstName string `db:"user_first_name"`
	UserLastName  string `db:"user_last_name"`
}

type Repository interface {
	Create(ctx context.Context, tip *Tip) error
	GetByID(ctx context.Context, id string) (*Tip, error)
	GetWithTipster(ctx context.Context, id string) (*TipWithTipster, error)
	List(ctx context.Context, params ListTipsParams) ([]TipWithTipster, error)
	Update(ctx context.Context, tip *Tip) error
	UpdateStatus(ctx context.Context, id, status string) (*Tip, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CreateReview(ctx context.Context, review *Review) error
	ListReviewsForTip(ctx context.Context, tipID string) ([]ReviewWithUser, error)
	CountReviews(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tipColumns = `
	t.id, t.tipster_id, t.title, t.description, t.sport, t.match_date,
	t.odds, t.prediction, t.is_premium, t.status, t.created_at, t.updated_at`

const tipsterColumns = `
	u.email AS tipster_email,
	u.first_name AS tipster_first_name,
	u.last_name AS tipster_last_name`

func (r *repository) Create(ctx context.Context, tip *Tip) error {
	query := `
		INSERT INTO tips (
			id, tipster_id, title, description, sport, match_date,
			odds, prediction, is_premium
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING status, created_at, updated_at`

	err := r.db.GetContext(ctx, tip, query,
		tip.ID,
		tip.TipsterID,
		tip.Title,
		tip.Description,
		tip.Sport,
		tip.MatchDate,
		tip.Odds,
		tip.Prediction,
		tip.IsPremium,
	)
	if err != nil {
		return fmt.Errorf("create tip: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tip, error) {
	query := `
		SELECT id, tipster_id, title, description, sport, match_date,
		       odds, prediction, is_premium, status, created_at, updated_at
		FROM tips
		WHERE id = $1`

	var tip Tip
	err := r.db.GetContext(ctx, &tip, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tip: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}

	return &tip, nil
}

func (r *repository) GetWithTipster(
	ctx context.Context,
	id string,
) (*TipWithTipster, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM tips t
		JOIN users u ON u.id = t.tipster_id
		WHERE t.id = $1`, tipColumns, tipsterColumns)

	var row TipWithTipster
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tip: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}

	return &row, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListTipsParams,
) ([]TipWithTipster, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Sport != "" {
		conditions = append(conditions, fmt.Sprintf("t.sport = $%d", argIdx))
		args = append(args, params.Sport)
		argIdx++
	}

	if params.TipsterID != "" {
		conditions = append(conditions, fmt.Sprintf("t.tipster_id = $%d", argIdx))
		args = append(args, params.TipsterID)
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, params.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM tips t
		JOIN users u ON u.id = t.tipster_id
		%s
		ORDER BY t.created_at DESC`, tipColumns, tipsterColumns, whereClause)

	var tips []TipWithTipster
	if err := r.db.SelectContext(ctx, &tips, query, args...); err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}

	return tips, nil
}

func (r *repository) Update(ctx context.Context, tip *Tip) error {
	query := `
		UPDATE tips
		SET title = $2, description = $3, sport = $4, match_date = $5,
		    odds = $6, prediction = $7, is_premium = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &tip.UpdatedAt, query,
		tip.ID,
		tip.Title,
		tip.Description,
		tip.Sport,
		tip.MatchDate,
		tip.Odds,
		tip.Prediction,
		tip.IsPremium,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update tip: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update tip: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Tip, error) {
	query := `
		UPDATE tips
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, tipster_id, title, description, sport, match_date,
		          odds, prediction, is_premium, status, created_at, updated_at`

	var tip Tip
	err := r.db.GetContext(ctx, &tip, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update tip status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update tip status: %w", err)
	}

	return &tip, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tips WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tip: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tips`); err != nil {
		return 0, fmt.Errorf("count tips: %w", err)
	}

	return total, nil
}

func (r *repository) CreateReview(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (id, tip_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &review.CreatedAt, query,
		review.ID,
		review.TipID,
		review.UserID,
		review.Rating,
		review.Comment,
	)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *repository) ListReviewsForTip(
	ctx context.Context,
	tipID string,
) ([]ReviewWithUser, error) {
	query := `
		SELECT
			rv.id, rv.tip_id, rv.user_id, rv.rating, rv.comment, rv.created_at,
			u.email AS user_email,
			u.first_name AS user_first_name,
			u.last_name AS user_last_name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.tip_id = $1
		ORDER BY rv.created_at DESC`

	var reviews []ReviewWithUser
	if err := r.db.SelectContext(ctx, &reviews, query, tipID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

func (r *repository) CountReviews(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews`); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return total, nil
}
