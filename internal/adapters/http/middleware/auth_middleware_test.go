package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/config"
	"staffdesk/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) CountAdmins(_ context.Context) (int64, error) { return 0, nil }

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := &stubUserRepo{users: map[string]*models.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true},
		"root":  {ID: 2, Username: "root", Email: "root@example.com", IsAdmin: true, IsActive: true},
		"gone":  {ID: 3, Username: "gone", Email: "gone@example.com", IsActive: false},
	}}

	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret, AccessTokenMins: 30}}

	app := fiber.New()
	app.Get("/me", AuthMiddleware(cfg, repo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"username": c.Locals(LocalUsername),
			"is_admin": c.Locals(LocalIsAdmin),
		})
	})
	app.Get("/admin", AuthMiddleware(cfg, repo), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func signToken(t *testing.T, username string, isAdmin bool, secret string, mins int) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(username, isAdmin, secret, mins)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "alice", false, testSecret, 30)

	if code := request(t, app, "/me", "Bearer "+token); code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", code)
	}
}

func TestAuthMiddleware_MissingOrGarbledHeader(t *testing.T) {
	app := testApp(t)

	cases := []string{
		"",
		"Bearer ",
		"Bearer not-a-token",
		"Basic dXNlcjpwYXNz",
	}
	for _, header := range cases {
		if code := request(t, app, "/me", header); code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for header %q, got %d", header, code)
		}
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "alice", false, testSecret, -1)

	if code := request(t, app, "/me", "Bearer "+token); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "alice", false, "another-secret", 30)

	if code := request(t, app, "/me", "Bearer "+token); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with a different secret, got %d", code)
	}
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "nobody", false, testSecret, 30)

	if code := request(t, app, "/me", "Bearer "+token); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown subject, got %d", code)
	}
}

func TestAuthMiddleware_InactiveUser(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "gone", false, testSecret, 30)

	if code := request(t, app, "/me", "Bearer "+token); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated user, got %d", code)
	}
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "alice", false, testSecret, 30)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for cookie token, got %d", resp.StatusCode)
	}
}

func TestAdminOnly_Forbidden(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "alice", false, testSecret, 30)

	// Identity is valid, privilege is not: must be 403, never 401.
	if code := request(t, app, "/admin", "Bearer "+token); code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", code)
	}
}

func TestAdminOnly_Allowed(t *testing.T) {
	app := testApp(t)
	token := signToken(t, "root", true, testSecret, 30)

	if code := request(t, app, "/admin", "Bearer "+token); code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", code)
	}
}

func TestAdminOnly_TokenClaimDoesNotOverrideDB(t *testing.T) {
	app := testApp(t)
	// Token says admin, database says otherwise; the database wins.
	token := signToken(t, "alice", true, testSecret, 30)

	if code := request(t, app, "/admin", "Bearer "+token); code != http.StatusForbidden {
		t.Fatalf("expected 403 when the DB flag is false, got %d", code)
	}
}
