package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sportscomplex/class-enrollment/internal/model"
	"github.com/sportscomplex/class-enrollment/internal/repository"
)

// UserService orchestrates user account management.
type UserService struct {
	users      UserStore
	bcryptCost int
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Create validates the request, hashes the password, and inserts the
// account. The email unique constraint backstops the pre-check.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	if !isValidEmail(req.Email) {
		return nil, fmt.Errorf("a valid email is required")
	}
	if req.Name == "" || req.Surname == "" {
		return nil, fmt.Errorf("name and surname are required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("role must be ADMIN or USER")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, &model.User{
		Email:        req.Email,
		Name:         req.Name,
		Surname:      req.Surname,
		Role:         req.Role,
		PasswordHash: string(hash),
	})
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Update applies the non-empty fields of the request to an existing user.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		email := strings.TrimSpace(strings.ToLower(req.Email))
		if !isValidEmail(email) {
			return nil, fmt.Errorf("a valid email is required")
		}
		u.Email = email
	}
	if req.Name != "" {
		u.Name = strings.TrimSpace(req.Name)
	}
	if req.Surname != "" {
		u.Surname = strings.TrimSpace(req.Surname)
	}
	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("role must be ADMIN or USER")
		}
		u.Role = req.Role
	}
	return s.users.Update(ctx, u)
}

// Delete removes a user account. A user may never remove their own
// account, regardless of role; other accounts' applications cascade away
// at the store level.
func (s *UserService) Delete(ctx context.Context, targetID, actingUserID int64) error {
	if targetID == actingUserID {
		return ErrSelfDeletion
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.users.Delete(ctx, targetID)
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
