package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// fakeUserRepo serves the accounts the middleware reloads per request.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }
func (r *fakeUserRepo) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	if user, ok := r.users[id]; ok {
		user.Status = status
	}
	return nil
}
func (r *fakeUserRepo) SetBreeder(context.Context, string, bool) error { return nil }
func (r *fakeUserRepo) SoftDelete(context.Context, string) error       { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}
func (r *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func newAuthTestApp(users *fakeUserRepo, tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error":             domainErr.Code,
				"error_description": domainErr.Description,
			})
		},
	})
	m := NewMiddleware(tm, users)
	app.Get("/protected", m.Handle, RequireUser(), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.SendString(principal.User.ID)
	})
	app.Get("/admin", m.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("test-secret", "mypaws", "mypaws-api", 60)
	user := testUser()
	repo := &fakeUserRepo{users: map[string]*domain.User{user.ID: user}}
	app := newAuthTestApp(repo, tm)

	token, _, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMiddlewareRejectsSuspendedUserDespiteValidToken(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("test-secret", "mypaws", "mypaws-api", 60)
	user := testUser()
	repo := &fakeUserRepo{users: map[string]*domain.User{user.ID: user}}
	app := newAuthTestApp(repo, tm)

	// Token minted while the account was active.
	token, _, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Suspension applies on the next request because status is reloaded.
	if err := repo.UpdateStatus(context.Background(), user.ID, domain.UserStatusSuspended); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewareRejectsMissingAndGarbageCredentials(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("test-secret", "mypaws", "mypaws-api", 60)
	app := newAuthTestApp(&fakeUserRepo{users: map[string]*domain.User{}}, tm)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("missing credentials status = %d, want 401", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", resp.StatusCode)
	}
}

func TestMiddlewareAdminGuard(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("test-secret", "mypaws", "mypaws-api", 60)
	user := testUser()
	repo := &fakeUserRepo{users: map[string]*domain.User{user.ID: user}}
	app := newAuthTestApp(repo, tm)

	token, _, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}
