// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

type SubscriptionWithTipster struct {
	Subscription
	TipsterEmail     string `db:"tipster_email"`
	TipsterFirstName string `db:"tipster_first_name"`
	TipsterLastName  string `db:"tipster_last_name"`
	TipsterRole      string `db:"tipster_role"`
}

type SubscriptionWithSubscriber struct {
	Subscription
	SubscriberEmail     string `db:"subscriber_email"`
	SubscriberFirstName string `db:"subscriber_first_name"`
	SubscriberLastName  string `db:"subscriber_last_name"`
}

type Repository interface {
	Subscribe(ctx context.Context, sub *Subscription) error
	GetByPair(
		ctx context.Context,
		userID, tipsterID string,
	) (*Subscription, error)
	GetWithTipster(ctx context.Context, id string) (*SubscriptionWithTipster, error)
	UpdateStatus(ctx context.Context, id, status string) (*Subscription, error)
	ListBySubscriber(
		ctx context.Context,
		userID string,
	) ([]SubscriptionWithTipster, error)
	ListByTipster(
		ctx context.Context,
		tipsterID string,
	) ([]SubscriptionWithSubscriber, error)
	CountActive(ctx context.Context) (int, error)
}

// repository holds the raw pool rather than a DBTX because Subscribe
// opens its own transaction for the check-then-insert sequence.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Subscribe creates the row inside a transaction. The existence check
// gives the common case a clean AlreadySubscribed failure; the unique
// index on (user_id, tipster_id) is what actually holds under
// concurrent subscribes, surfacing as a duplicate-key error mapped to
// the same failure.
func (r *repository) Subscribe(ctx context.Context, sub *Subscription) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(
				SELECT 1 FROM subscriptions
				WHERE user_id = $1 AND tipster_id = $2
			)`,
			sub.UserID, sub.TipsterID,
		)
		if err != nil {
			return fmt.Errorf("check subscription exists: %w", err)
		}

		if exists {
			return fmt.Errorf("subscribe: %w", core.ErrAlreadySubscribed)
		}

		query := `
			INSERT INTO subscriptions (id, user_id, tipster_id, plan, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		err = tx.GetContext(ctx, sub, query,
			sub.ID,
			sub.UserID,
			sub.TipsterID,
			sub.Plan,
			sub.Status,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("subscribe: %w", core.ErrAlreadySubscribed)
			}
			return fmt.Errorf("create subscription: %w", err)
		}

		return nil
	})
}

// GetByPair is deliberately status-blind: a CANCELLED row still counts
// as the pair existing.
func (r *repository) GetByPair(
	ctx context.Context,
	userID, tipsterID string,
) (*Subscription, error) {
	query := `
		SELECT id, user_id, tipster_id, plan, status, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1 AND tipster_id = $2`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, userID, tipsterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

func (r *repository) GetWithTipster(
	ctx context.Context,
	id string,
) (*SubscriptionWithTipster, error) {
	query := `
		SELECT
			s.id, s.user_id, s.tipster_id, s.plan, s.status,
			s.created_at, s.updated_at,
			u.email AS tipster_email,
			u.first_name AS tipster_first_name,
			u.last_name AS tipster_last_name,
			u.role AS tipster_role
		FROM subscriptions s
		JOIN users u ON u.id = s.tipster_id
		WHERE s.id = $1`

	var row SubscriptionWithTipster
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &row, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Subscription, error) {
	query := `
		UPDATE subscriptions
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, tipster_id, plan, status, created_at, updated_at`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update subscription status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update subscription status: %w", err)
	}

	return &sub, nil
}

func (r *repository) ListBySubscriber(
	ctx context.Context,
	userID string,
) ([]SubscriptionWithTipster, error) {
	query := `
		SELECT
			s.id, s.user_id, s.tipster_id, s.plan, s.status,
			s.created_at, s.updated_at,
			u.email AS tipster_email,
			u.first_name AS tipster_first_name,
			u.last_name AS tipster_last_name,
			u.role AS tipster_role
		FROM subscriptions s
		JOIN users u ON u.id = s.tipster_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`

	var subs []SubscriptionWithTipster
	if err := r.db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	return subs, nil
}

func (r *repository) ListByTipster(
	ctx context.Context,
	tipsterID string,
) ([]SubscriptionWithSubscriber, error) {
	query := `
		SELECT
			s.id, s.user_id, s.tipster_id, s.plan, s.status,
			s.created_at, s.updated_at,
			u.email AS subscriber_email,
			u.first_name AS subscriber_first_name,
			u.last_name AS subscriber_last_name
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.tipster_id = $1
		ORDER BY s.created_at DESC`

	var subs []SubscriptionWithSubscriber
	if err := r.db.SelectContext(ctx, &subs, query, tipsterID); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	return subs, nil
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE status = 'ACTIVE'`

	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count active subscriptions: %w", err)
	}

	return total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
