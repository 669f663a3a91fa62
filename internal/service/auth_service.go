package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/upstream"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// ErrInvalidCredentials is returned when the backend rejects the login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates login and logout against the backend.
type AuthService struct {
	backend     LoginBackend
	codec       *auth.TokenCodec
	revocations auth.Revocations
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates what the auth service needs.
type AuthDependencies struct {
	Backend     LoginBackend
	Codec       *auth.TokenCodec
	Revocations auth.Revocations
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		backend:     deps.Backend,
		codec:       deps.Codec,
		revocations: deps.Revocations,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// Login returns the session token issued by the backend.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		var upErr *upstream.Error
		if errors.As(err, &upErr) && isCredentialRejection(upErr.Status) {
			publish(ctx, s.dispatcher, s.logger, events.EventLoginFailed, &domain.Identity{Email: email}, nil)
			return "", ErrInvalidCredentials
		}
		return "", apperrors.FromUpstream(err, "", "Unable to sign in. Please try again later.")
	}
	if token == "" {
		publish(ctx, s.dispatcher, s.logger, events.EventLoginFailed, &domain.Identity{Email: email}, nil)
		return "", ErrInvalidCredentials
	}

	publish(ctx, s.dispatcher, s.logger, events.EventLoginSucceeded, &domain.Identity{Email: email}, nil)
	return token, nil
}

func isCredentialRejection(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

// Logout revokes a still-valid token for the rest of its lifetime. Tokens
// that no longer verify need no revocation.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || !s.codec.Configured() {
		return nil
	}
	identity, expiresAt, err := s.codec.Verify(token)
	if err != nil {
		return nil
	}
	if s.revocations != nil {
		if err := s.revocations.Revoke(ctx, token, expiresAt); err != nil {
			s.logger.Warn("token revocation failed", zap.Error(err))
		}
	}
	publish(ctx, s.dispatcher, s.logger, events.EventLogout, identity, nil)
	return nil
}
