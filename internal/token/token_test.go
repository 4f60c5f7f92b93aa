package token

import (
	"errors"
	"testing"
	"time"

	"eventmanagement/internal/model"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour, nil)
	tok, err := m.Generate("asha@example.com", model.RoleOrganizer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Email != "asha@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != model.RoleOrganizer {
		t.Errorf("unexpected role %s", claims.Role)
	}
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	issuer := NewManager("test-secret", time.Hour, func() time.Time { return issued })
	tok, err := issuer.Generate("asha@example.com", model.RoleAttendee)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	later := NewManager("test-secret", time.Hour, func() time.Time { return issued.Add(2 * time.Hour) })
	if _, err := later.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for an expired token, got %v", err)
	}
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("secret-a", time.Hour, nil).Generate("asha@example.com", model.RoleAttendee)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour, nil).Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for a forged signature, got %v", err)
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour, nil)
	if _, err := m.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
