package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
	"eventmanagement/internal/service"
	"eventmanagement/internal/token"
)

type userResolverStub struct {
	user *model.User
}

func (s *userResolverStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, repository.ErrNotFound
	}
	return s.user, nil
}

func capturePrincipal(got *service.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = principalFrom(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("test-secret", time.Hour, nil)
	user := &model.User{ID: 42, Email: "asha@example.com", Role: model.RoleAttendee}

	validToken, err := tokens.Generate(user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	staleRoleToken, err := tokens.Generate(user.Email, model.RoleOrganizer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	forged, err := token.NewManager("other-secret", time.Hour, nil).Generate(user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   service.Principal
	}{
		{"no header", "", service.Principal{}},
		{"malformed header", "Token abc", service.Principal{}},
		{"forged signature", "Bearer " + forged, service.Principal{}},
		{"role changed since issue", "Bearer " + staleRoleToken, service.Principal{}},
		{"valid token", "Bearer " + validToken, service.Principal{UserID: 42, Role: model.RoleAttendee}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got service.Principal
			mw := Authenticate(tokens, &userResolverStub{user: user})
			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw(capturePrincipal(&got)).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("handler not reached, status %d", rec.Code)
			}
			if got != tt.want {
				t.Errorf("principal = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAuthenticate_UnknownUserStaysAnonymous(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("test-secret", time.Hour, nil)
	tok, err := tokens.Generate("ghost@example.com", model.RoleAttendee)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var got service.Principal
	mw := Authenticate(tokens, &userResolverStub{})
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	mw(capturePrincipal(&got)).ServeHTTP(rec, req)

	if got.Present() {
		t.Errorf("expected anonymous principal, got %+v", got)
	}
}
