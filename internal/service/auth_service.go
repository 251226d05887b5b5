package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// AuthService handles registration, login and the refresh-token lifecycle.
// Refresh tokens are opaque random values stored in Redis and rotated on
// every use; revoking a session is deleting its key.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	policy     *auth.Policy
	redis      *redis.Client
	bcryptCost int
	refreshTTL time.Duration
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	Users  repository.UserRepository
	Tokens *auth.TokenManager
	Policy *auth.Policy
	Redis  *redis.Client
}

// NewAuthService constructs the service.
func NewAuthService(bcryptCost, refreshTTLHours int, deps AuthDependencies) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	if refreshTTLHours <= 0 {
		refreshTTLHours = 720
	}
	return &AuthService{
		users:      deps.Users,
		tokens:     deps.Tokens,
		policy:     deps.Policy,
		redis:      deps.Redis,
		bcryptCost: bcryptCost,
		refreshTTL: time.Duration(refreshTTLHours) * time.Hour,
	}
}

// RegisterInput carries signup fields.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Session is an issued token pair.
type Session struct {
	User         *domain.User
	AccessToken  string
	ExpiresAt    time.Time
	RefreshToken string
}

// Register creates an account and signs the first session in. Emails on the
// bootstrap admin list come up with the admin flag already set.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	switch {
	case input.Name == "":
		return nil, apperrors.NewValidationError("name is required")
	case !strings.Contains(input.Email, "@"):
		return nil, apperrors.NewValidationError("a valid email is required")
	case len(input.Password) < 8:
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email is already registered")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hash,
		IsAdmin:      s.policy.IsBootstrapAdmin(email),
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// Login verifies credentials and issues a session. A disabled account fails
// even with the right password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid email or password")
	}
	if !user.Status.CanAuthenticate() {
		return nil, apperrors.NewForbidden("account is disabled")
	}
	return s.issueSession(ctx, user)
}

// Refresh exchanges a refresh token for a new pair. The old token is consumed
// atomically, so a replayed token fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperrors.NewUnauthorized("refresh token missing")
	}
	key := refreshKey(refreshToken)
	userID, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NewUnauthorized("refresh token invalid or expired")
		}
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("account no longer exists")
		}
		return nil, err
	}
	if !user.Status.CanAuthenticate() {
		return nil, apperrors.NewForbidden("account is disabled")
	}
	return s.issueSession(ctx, user)
}

// Logout revokes the given refresh token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.redis.Del(ctx, refreshKey(refreshToken)).Err()
}

// Me reloads the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries editable account fields.
type UpdateProfileInput struct {
	Name  string
	Phone string
}

// UpdateProfile edits the caller's own account record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = input.Name
	user.Phone = input.Phone
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*Session, error) {
	access, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, refreshKey(refresh), user.ID, s.refreshTTL).Err(); err != nil {
		return nil, err
	}
	return &Session{
		User:         user,
		AccessToken:  access,
		ExpiresAt:    expiresAt,
		RefreshToken: refresh,
	}, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func refreshKey(token string) string {
	return fmt.Sprintf("auth:refresh:%s", token)
}
