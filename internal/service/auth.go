package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
	"eventmanagement/internal/token"
)

// CredentialStore captures the user persistence needed for authentication.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
}

// AuthService handles signup and credential login.
type AuthService struct {
	users  CredentialStore
	tokens *token.Manager
}

// NewAuthService constructs an AuthService.
func NewAuthService(users CredentialStore, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an ORGANIZER or ATTENDEE account and returns a signed
// token for it. ADMIN accounts can only be created through user management.
func (s *AuthService) Register(ctx context.Context, req model.RegisterUserRequest) (*model.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !isValidEmail(req.Email) {
		return nil, fmt.Errorf("a valid email is required")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if req.Role == model.RoleAdmin {
		return nil, fmt.Errorf("ADMIN role cannot be selected during registration")
	}
	if req.Role != model.RoleOrganizer && req.Role != model.RoleAttendee {
		return nil, fmt.Errorf("invalid role, only ORGANIZER or ATTENDEE allowed")
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
		Role:      req.Role,
	}
	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user already exists with email %s", req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.respond(user)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respond(user)
}

func (s *AuthService) respond(user *model.User) (*model.AuthResponse, error) {
	tok, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	out := *user
	out.Password = ""
	return &model.AuthResponse{Token: tok, User: out}, nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
