package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/job-portal/internal/domain"
)

var (
	// ErrConfiguration is returned when no signing secret is configured.
	ErrConfiguration = errors.New("auth: signing secret not configured")
	// ErrInvalidToken covers malformed, expired and badly signed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims describes the session JWT payload issued by the backend.
type Claims struct {
	UserID    int         `json:"userId"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	UserRole  domain.Role `json:"userRole"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the request-scoped identity.
func (c *Claims) Identity() *domain.Identity {
	return &domain.Identity{
		UserID:    c.UserID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      c.UserRole,
	}
}

// TokenCodec verifies session tokens. It never decodes without verifying.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec builds a codec for the shared HS256 secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Configured reports whether a signing secret is present.
func (tc *TokenCodec) Configured() bool {
	return tc != nil && len(tc.secret) > 0
}

// Verify checks signature and expiry and returns the identity and expiry time.
func (tc *TokenCodec) Verify(raw string) (*domain.Identity, time.Time, error) {
	if !tc.Configured() {
		return nil, time.Time{}, ErrConfiguration
	}
	if raw == "" {
		return nil, time.Time{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, time.Time{}, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, time.Time{}, ErrInvalidToken
	}
	return claims.Identity(), claims.ExpiresAt.Time, nil
}
