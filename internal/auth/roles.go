package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// RequireUser ensures an authenticated account.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireBreeder ensures the caller is an approved breeder. The flag comes
// from the freshly loaded account, not the token, so a just-approved breeder
// does not need to re-login for role checks.
func RequireBreeder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.User.IsBreeder {
			return apperrors.NewForbidden("breeder role required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.User.IsAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
