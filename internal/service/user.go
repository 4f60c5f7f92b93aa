package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
)

// UserStore captures the user persistence needed for account management.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService implements admin-gated account management.
type UserService struct {
	users UserStore
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// List returns every account. ADMIN only.
func (s *UserService) List(ctx context.Context, p Principal) ([]model.User, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, p Principal, id int64) (*model.User, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := *user
	out.Password = ""
	return &out, nil
}

// GetByEmail returns a single account by email.
func (s *UserService) GetByEmail(ctx context.Context, p Principal, email string) (*model.User, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	out := *user
	out.Password = ""
	return &out, nil
}

// Create adds an account with any role, including ADMIN. ADMIN only.
func (s *UserService) Create(ctx context.Context, p Principal, req model.CreateUserRequest) (*model.User, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !isValidEmail(req.Email) {
		return nil, fmt.Errorf("a valid email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}
	role := req.Role
	if role == "" {
		role = model.RoleAttendee
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("user already exists with email %s", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  string(hash),
		Phone:     strings.TrimSpace(req.Phone),
		Role:      role,
	}
	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user already exists with email %s", req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	out := *user
	out.Password = ""
	return &out, nil
}

// Update edits profile fields and role. Email and password stay as they are.
// ADMIN only.
func (s *UserService) Update(ctx context.Context, p Principal, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Phone = strings.TrimSpace(req.Phone)
	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("invalid role %q", req.Role)
		}
		user.Role = req.Role
	}
	user, err = s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	out := *user
	out.Password = ""
	return &out, nil
}

// Delete removes an account. ADMIN only.
func (s *UserService) Delete(ctx context.Context, p Principal, id int64) error {
	if !p.Present() {
		return ErrUnauthorized
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return s.users.Delete(ctx, id)
}
