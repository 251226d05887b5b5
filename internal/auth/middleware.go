package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

const principalKey = "auth_principal"

// AccessTokenCookie and RefreshTokenCookie name the browser cookies.
const (
	AccessTokenCookie  = "mypaws_access_token"
	RefreshTokenCookie = "mypaws_refresh_token"
)

// Principal represents the authenticated caller. User is loaded fresh from
// the database on every request.
type Principal struct {
	User   *User
	Claims *Claims
}

// User aliases the domain account for handler convenience.
type User = domain.User

// Middleware validates tokens and loads principals.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. The token proves
// identity; the account status check is authoritative and comes from the
// database, so suspensions and bans reject even unexpired tokens.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("missing credentials")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}
	if !user.Status.CanAuthenticate() {
		return apperrors.NewUnauthorized("account " + string(user.Status))
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims})
	return c.Next()
}

func extractToken(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(AccessTokenCookie)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
