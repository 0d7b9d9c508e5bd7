// AngelaMos | 2026
// entity.go

package tip

import (
	"time"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Tip struct {
	ID          string    `db:"id"`
	TipsterID   string    `db:"tipster_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Sport       string    `db:"sport"`
	MatchDate   time.Time `db:"match_date"`
	Odds        *float64  `db:"odds"`
	Prediction  *string   `db:"prediction"`
	IsPremium   bool      `db:"is_premium"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Review struct {
	ID        string    `db:"id"`
	TipID     string    `db:"tip_id"`
	UserID    string    `db:"user_id"`
	Rating    int       `db:"rating"`
	Comment   *string   `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
