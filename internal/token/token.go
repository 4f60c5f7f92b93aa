// Package token issues and verifies the JWT bearer tokens used for
// authentication. Tokens carry the account email and role; the middleware
// resolves them back to a full user record on each request.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventmanagement/internal/model"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity claims embedded in issued tokens.
type Claims struct {
	Email string
	Role  model.Role
}

// Manager signs and parses HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewManager constructs a Manager. A nil now falls back to time.Now.
func NewManager(secret string, expiry time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: []byte(secret), expiry: expiry, now: now}
}

// Generate signs a token for the given identity.
func (m *Manager) Generate(email string, role model.Role) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(m.expiry).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Parse validates a token string and extracts its identity claims.
func (m *Manager) Parse(tokenString string) (Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	email, _ := mapClaims["sub"].(string)
	role, _ := mapClaims["role"].(string)
	if email == "" || !model.Role(role).Valid() {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Email: email, Role: model.Role(role)}, nil
}
