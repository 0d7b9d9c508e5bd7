// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	RoleUser    = "USER"
	RoleTipster = "TIPSTER"
	RoleAdmin   = "ADMIN"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleTipster || role == RoleAdmin
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTipster() bool {
	return u.Role == RoleTipster
}
