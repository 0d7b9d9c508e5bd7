// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

type repoStub struct {
	byID map[string]*User
}

func newRepoStub() *repoStub {
	return &repoStub{byID: make(map[string]*User)}
}

func (r *repoStub) Create(ctx context.Context, user *User) error {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *repoStub) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *repoStub) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *repoStub) UpdateProfile(ctx context.Context, user *User) error {
	u, ok := r.byID[user.ID]
	if !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	return nil
}

func (r *repoStub) UpdateRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (r *repoStub) SetActive(
	ctx context.Context,
	id string,
	active bool,
) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("set active: %w", core.ErrNotFound)
	}
	u.IsActive = active
	cp := *u
	return &cp, nil
}

func (r *repoStub) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	u, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *repoStub) IncrementTokenVersion(ctx context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (r *repoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

func (r *repoStub) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, error) {
	var out []User
	for _, u := range r.byID {
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		if params.IsActive != nil && u.IsActive != *params.IsActive {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *repoStub) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *repoStub) Count(ctx context.Context) (int, error) {
	return len(r.byID), nil
}

func TestCreate_DefaultsToUserRole(t *testing.T) {
	svc := NewService(newRepoStub())

	info, err := svc.Create(
		context.Background(),
		"A@Example.com", "hash", "First", "Last", "",
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if info.Role != RoleUser {
		t.Fatalf("role = %q, want %q", info.Role, RoleUser)
	}
	if info.Email != "a@example.com" {
		t.Fatalf("email = %q, want lowercased", info.Email)
	}
}

func TestCreate_RejectsAdminSelfRegistration(t *testing.T) {
	svc := NewService(newRepoStub())

	_, err := svc.Create(
		context.Background(),
		"a@example.com", "hash", "First", "Last", RoleAdmin,
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestChangePassword_BumpsTokenVersion(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)
	ctx := context.Background()

	hash, err := core.HashPassword("old-password-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.byID["user-1"] = &User{
		ID:           "user-1",
		Email:        "a@example.com",
		PasswordHash: hash,
		Role:         RoleUser,
		IsActive:     true,
	}

	if err := svc.ChangePassword(ctx, "user-1", "old-password-123", "new-password-456"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	u := repo.byID["user-1"]
	if u.TokenVersion != 1 {
		t.Fatalf("token version = %d, want 1", u.TokenVersion)
	}

	ok, err := core.VerifyPassword("new-password-456", u.PasswordHash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("new password should verify against stored hash")
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	hash, err := core.HashPassword("old-password-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.byID["user-1"] = &User{ID: "user-1", PasswordHash: hash}

	err = svc.ChangePassword(
		context.Background(),
		"user-1", "not-the-old-password", "new-password-456",
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestExists(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)
	repo.byID["user-1"] = &User{ID: "user-1"}

	ok, err := svc.Exists(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Fatal("expected known user to exist")
	}

	ok, err = svc.Exists(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Fatal("unknown user should not exist")
	}
}
