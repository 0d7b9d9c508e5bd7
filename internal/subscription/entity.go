// AngelaMos | 2026
// entity.go

package subscription

import (
	"time"
)

const (
	StatusActive    = "ACTIVE"
	StatusCancelled = "CANCELLED"
)

const DefaultPlan = "FREE"

// Subscription records that one user follows a tipster. The
// (user_id, tipster_id) pair is the natural key; at most one row exists
// per pair regardless of status, backed by a unique index.
type Subscription struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	TipsterID string    `db:"tipster_id"`
	Plan      string    `db:"plan"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}
