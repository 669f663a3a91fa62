package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/upstream"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

const identityKey = "auth_identity"

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// Gate authenticates requests from the session cookie.
type Gate struct {
	codec        *TokenCodec
	revocations  Revocations
	logger       *zap.Logger
	secureCookie bool
	onReject     RejectionObserver
}

// RejectionObserver is told the error code whenever the gate turns a request
// away with a redirect to the login page.
type RejectionObserver func(c *fiber.Ctx, code string)

// NewGate constructs the middleware. revocations may be nil.
func NewGate(codec *TokenCodec, revocations Revocations, logger *zap.Logger, secureCookie bool) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{codec: codec, revocations: revocations, logger: logger, secureCookie: secureCookie}
}

// OnReject registers fn to observe redirected requests.
func (g *Gate) OnReject(fn RejectionObserver) *Gate {
	g.onReject = fn
	return g
}

func (g *Gate) reject(c *fiber.Ctx, code string) error {
	if g.onReject != nil {
		g.onReject(c, code)
	}
	return c.Redirect(LoginPath)
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookie)
	if token == "" {
		return g.reject(c, apperrors.CodeMissingToken)
	}

	if !g.codec.Configured() {
		g.logger.Error("JWT_SECRET not configured; refusing to authenticate")
		return apperrors.NewConfigurationError(ErrConfiguration)
	}

	identity, _, err := g.codec.Verify(token)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return apperrors.NewConfigurationError(err)
		}
		g.logger.Debug("rejecting session token", zap.String("path", c.Path()), zap.Error(err))
		ClearSessionCookie(c, g.secureCookie)
		return g.reject(c, apperrors.CodeInvalidToken)
	}

	if g.revocations != nil {
		revoked, err := g.revocations.IsRevoked(c.UserContext(), token)
		if err != nil {
			g.logger.Warn("revocation lookup failed", zap.Error(err))
		} else if revoked {
			ClearSessionCookie(c, g.secureCookie)
			return g.reject(c, apperrors.CodeInvalidToken)
		}
	}

	c.Locals(identityKey, identity)
	c.SetUserContext(upstream.WithBearer(c.UserContext(), token))
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok && identity != nil
}
