package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/domain"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

const accessDeniedMessage = "You do not have permission to access this page."

// Authorize checks the identity holds the required role. A missing identity is denied.
func Authorize(identity *domain.Identity, required domain.Role) error {
	if identity == nil || required == domain.RoleUnknown || identity.Role != required {
		return apperrors.NewForbidden(accessDeniedMessage)
	}
	return nil
}

// RequireRole ensures the authenticated identity has the given role.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := Authorize(identity, required); err != nil {
			return err
		}
		return c.Next()
	}
}
