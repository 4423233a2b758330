package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vitalog/domain"
	"vitalog/entities"
)

// stubUserService resolves tokens from a fixed map; everything else on the
// interface is unreachable from the middleware under test.
type stubUserService struct {
	sessions map[string]*entities.User
	errs     map[string]error
}

func (s *stubUserService) ResolveSession(_ context.Context, sessionToken string) (*entities.User, error) {
	if err, ok := s.errs[sessionToken]; ok {
		return nil, err
	}
	user, ok := s.sessions[sessionToken]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *stubUserService) Register(context.Context, domain.RegisterRequest) (domain.AuthResponse, error) {
	panic("not used")
}
func (s *stubUserService) Login(context.Context, domain.LoginRequest) (domain.AuthResponse, error) {
	panic("not used")
}
func (s *stubUserService) Logout(context.Context, string) error { panic("not used") }
func (s *stubUserService) Me(context.Context, string) (domain.UserProfile, error) {
	panic("not used")
}
func (s *stubUserService) ForgotPassword(context.Context, domain.ForgotPasswordRequest) error {
	panic("not used")
}
func (s *stubUserService) ResetPassword(context.Context, domain.ResetPasswordRequest) error {
	panic("not used")
}
func (s *stubUserService) GetUsers(context.Context) ([]domain.AdminUserRow, error) {
	panic("not used")
}
func (s *stubUserService) UpdateUserRoles(context.Context, string, domain.UpdateUserRolesRequest, string) (domain.UserProfile, error) {
	panic("not used")
}

func newTestApp() (*fiber.App, *stubUserService) {
	users := &stubUserService{
		sessions: map[string]*entities.User{
			"member-token": {ID: uuid.New(), Email: "member@example.com"},
			"admin-token":  {ID: uuid.New(), Email: "admin@example.com", IsAdmin: true},
		},
		errs: map[string]error{
			"broken-token": errors.New("connection refused"),
		},
	}

	m := NewMiddleware()
	app := fiber.New()

	identity := func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		isAdmin, _ := c.Locals("is_admin").(bool)
		return c.JSON(fiber.Map{"user_id": userID, "is_admin": isAdmin})
	}

	app.Get("/protected", m.AuthMiddleware(users), identity)
	app.Get("/optional", m.OptionalAuthMiddleware(users), identity)
	app.Get("/admin-only", m.AuthMiddleware(users), m.AdminMiddleware(), identity)

	return app, users
}

func doRequest(t *testing.T, app *fiber.App, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		name   string
		bearer string
		want   int
	}{
		{name: "no token", bearer: "", want: fiber.StatusUnauthorized},
		{name: "unknown token", bearer: "garbage", want: fiber.StatusUnauthorized},
		{name: "valid token", bearer: "member-token", want: fiber.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := doRequest(t, app, "/protected", test.bearer)
			if resp.StatusCode != test.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.want)
			}
		})
	}
}

// A session-store failure is a server error, not a rejected credential.
func TestAuthMiddlewareStoreFailureIsNot401(t *testing.T) {
	app, _ := newTestApp()

	resp := doRequest(t, app, "/protected", "broken-token")
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestAuthMiddlewareRejectsNonBearerScheme(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic bWVtYmVyOnB3")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		name   string
		bearer string
	}{
		{name: "anonymous passes through", bearer: ""},
		{name: "bad token still passes through", bearer: "garbage"},
		{name: "valid token passes through", bearer: "member-token"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := doRequest(t, app, "/optional", test.bearer)
			if resp.StatusCode != fiber.StatusOK {
				t.Errorf("status = %d, want 200", resp.StatusCode)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		name   string
		bearer string
		want   int
	}{
		{name: "anonymous", bearer: "", want: fiber.StatusUnauthorized},
		{name: "authenticated non-admin", bearer: "member-token", want: fiber.StatusForbidden},
		{name: "admin", bearer: "admin-token", want: fiber.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := doRequest(t, app, "/admin-only", test.bearer)
			if resp.StatusCode != test.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.want)
			}
		})
	}
}
