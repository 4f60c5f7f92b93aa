package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"eventmanagement/internal/model"
	"eventmanagement/internal/service"
	"eventmanagement/internal/token"
)

type contextKey string

const principalKey contextKey = "principal"

// UserResolver turns a token's email claim into a full user record.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// principalFrom extracts the caller identity stashed by Authenticate.
// The zero Principal means the request is anonymous.
func principalFrom(r *http.Request) service.Principal {
	p, _ := r.Context().Value(principalKey).(service.Principal)
	return p
}

// Authenticate resolves a Bearer token into a Principal and stores it in the
// request context. Requests without a valid token continue anonymously; the
// service layer decides what anonymous callers may do.
func Authenticate(tokens *token.Manager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := r.Header.Get("Authorization")
			if !strings.HasPrefix(bearer, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Parse(strings.TrimPrefix(bearer, "Bearer "))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetByEmail(r.Context(), claims.Email)
			if err != nil || user.Role != claims.Role {
				// Stale token: the account vanished or its role changed.
				next.ServeHTTP(w, r)
				return
			}
			p := service.Principal{UserID: user.ID, Role: user.Role}
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger emits one structured access-log line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
