package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vitalog/domain"
	"vitalog/entities"
	"vitalog/pkg/token"
)

type fakeUserRepository struct {
	users    map[string]*entities.User // keyed by id
	sessions map[string]*entities.AuthSession
	balances map[string]float64
	subs     map[string]*entities.Subscription

	createUserErr error
	balanceErr    error
	subErr        error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:    map[string]*entities.User{},
		sessions: map[string]*entities.AuthSession{},
		balances: map[string]float64{},
		subs:     map[string]*entities.Subscription{},
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUsers(_ context.Context) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepository) GetUserBalance(_ context.Context, userID string) (float64, error) {
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balances[userID], nil
}

func (f *fakeUserRepository) GetActiveSubscription(_ context.Context, userID string) (*entities.Subscription, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.subs[userID], nil
}

func (f *fakeUserRepository) CreateSession(_ context.Context, session *entities.AuthSession) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeUserRepository) GetSessionByToken(_ context.Context, sessionToken string) (*entities.AuthSession, error) {
	session, ok := f.sessions[sessionToken]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (f *fakeUserRepository) DeleteSession(_ context.Context, sessionToken string) error {
	delete(f.sessions, sessionToken)
	return nil
}

func newTestUserService() (UserService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return NewUserService(repo, token.NewTokenService()), repo
}

func registerTestUser(t *testing.T, service UserService, email, password string) domain.AuthResponse {
	t.Helper()
	resp, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    email,
		Name:     "Test User",
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return resp
}

func TestRegister(t *testing.T) {
	service, repo := newTestUserService()

	resp := registerTestUser(t, service, "  Ada@Example.COM ", "hunter2!")

	if resp.Token == "" {
		t.Error("registration issued no session token")
	}
	if resp.User.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", resp.User.Email)
	}
	if resp.User.IsAdmin {
		t.Error("new users must not be admins")
	}

	stored := repo.users[resp.User.ID]
	if stored == nil {
		t.Fatal("user row not created")
	}
	if stored.PasswordHash == "hunter2!" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2!")); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestUserService()
	registerTestUser(t, service, "ada@example.com", "hunter2!")

	// same address under different casing is still a conflict
	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "Ada@Example.com",
		Name:     "Someone Else",
		Password: "different",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

// A signup that passes the duplicate pre-check can still lose the race to a
// concurrent insert; the unique index rejection must come back as the same
// conflict, not a server error.
func TestRegisterDuplicateRaceHitsUniqueIndex(t *testing.T) {
	service, repo := newTestUserService()
	repo.createUserErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: "hunter2!",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	service, _ := newTestUserService()
	registerTestUser(t, service, "ada@example.com", "hunter2!")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct credentials", email: "ada@example.com", password: "hunter2!"},
		{name: "case-insensitive email", email: "ADA@example.com", password: "hunter2!"},
		{name: "wrong password", email: "ada@example.com", password: "wrong", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "hunter2!", wantErr: domain.ErrInvalidCredentials},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, err := service.Login(context.Background(), domain.LoginRequest{
				Email:    test.email,
				Password: test.password,
			})
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("err = %v, want %v", err, test.wantErr)
			}
			if test.wantErr == nil && resp.Token == "" {
				t.Error("login issued no session token")
			}
		})
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	service, _ := newTestUserService()
	first := registerTestUser(t, service, "ada@example.com", "hunter2!")

	second, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2!",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if first.Token == second.Token {
		t.Error("two sessions share one token")
	}
}

func TestResolveSession(t *testing.T) {
	service, repo := newTestUserService()
	resp := registerTestUser(t, service, "ada@example.com", "hunter2!")

	user, err := service.ResolveSession(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if user.ID.String() != resp.User.ID {
		t.Errorf("resolved user %s, want %s", user.ID, resp.User.ID)
	}

	t.Run("empty token", func(t *testing.T) {
		if _, err := service.ResolveSession(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		if _, err := service.ResolveSession(context.Background(), "not-a-session"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		repo.sessions[resp.Token].ExpiresAt = time.Now().Add(-time.Minute)
		if _, err := service.ResolveSession(context.Background(), resp.Token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	service, _ := newTestUserService()
	resp := registerTestUser(t, service, "ada@example.com", "hunter2!")
	ctx := context.Background()

	if err := service.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := service.ResolveSession(ctx, resp.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("token still resolves after logout: %v", err)
	}

	// logging out again with the same dead token is still a success
	if err := service.Logout(ctx, resp.Token); err != nil {
		t.Errorf("repeated Logout: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	service, _ := newTestUserService()

	// unknown addresses succeed silently so the endpoint cannot be used to
	// probe which emails are registered
	err := service.ForgotPassword(context.Background(), domain.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})
	if err != nil {
		t.Errorf("ForgotPassword: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	service, _ := newTestUserService()
	registerTestUser(t, service, "ada@example.com", "hunter2!")
	ctx := context.Background()

	tokenService := token.NewTokenService()
	resetToken, err := tokenService.GenerateResetToken("ada@example.com", 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	err = service.ResetPassword(ctx, domain.ResetPasswordRequest{
		Token:    resetToken,
		Password: "new-password",
	})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := service.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "hunter2!"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("old password still accepted after reset")
	}
	if _, err := service.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "new-password"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestResetPasswordGarbageToken(t *testing.T) {
	service, _ := newTestUserService()

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    "not.a.jwt",
		Password: "whatever",
	})
	if !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Errorf("err = %v, want ErrResetTokenInvalid", err)
	}
}

func boolPtr(v bool) *bool { return &v }

func TestUpdateUserRoles(t *testing.T) {
	service, _ := newTestUserService()
	admin := registerTestUser(t, service, "admin@example.com", "pw-admin")
	member := registerTestUser(t, service, "member@example.com", "pw-member")
	ctx := context.Background()

	profile, err := service.UpdateUserRoles(ctx, member.User.ID, domain.UpdateUserRolesRequest{
		IsAdmin:        boolPtr(true),
		IsNutritionist: boolPtr(true),
	}, admin.User.ID)
	if err != nil {
		t.Fatalf("UpdateUserRoles: %v", err)
	}
	if !profile.IsAdmin || !profile.IsNutritionist {
		t.Errorf("roles not applied: %+v", profile)
	}

	t.Run("self demotion rejected", func(t *testing.T) {
		_, err := service.UpdateUserRoles(ctx, admin.User.ID, domain.UpdateUserRolesRequest{
			IsAdmin: boolPtr(false),
		}, admin.User.ID)
		if !errors.Is(err, domain.ErrSelfDemotion) {
			t.Errorf("err = %v, want ErrSelfDemotion", err)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := service.UpdateUserRoles(ctx, "e1a84b9e-0000-0000-0000-000000000000", domain.UpdateUserRolesRequest{
			IsAdmin: boolPtr(true),
		}, admin.User.ID)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})
}

func TestGetUsersIncludesBillingInfo(t *testing.T) {
	service, repo := newTestUserService()
	resp := registerTestUser(t, service, "ada@example.com", "hunter2!")

	repo.balances[resp.User.ID] = 125000
	repo.subs[resp.User.ID] = &entities.Subscription{Plan: "premium", Status: "active"}

	rows, err := service.GetUsers(context.Background())
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Balance != 125000 || rows[0].SubscriptionPlan != "premium" {
		t.Errorf("row = %+v", rows[0])
	}
}

// A failing balance or subscription read aborts the listing instead of
// rendering users with silently zeroed billing columns.
func TestGetUsersPropagatesStoreErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *fakeUserRepository)
	}{
		{name: "balance read fails", setup: func(repo *fakeUserRepository) {
			repo.balanceErr = errors.New("connection refused")
		}},
		{name: "subscription read fails", setup: func(repo *fakeUserRepository) {
			repo.subErr = errors.New("connection refused")
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, repo := newTestUserService()
			registerTestUser(t, service, "ada@example.com", "hunter2!")
			test.setup(repo)

			if _, err := service.GetUsers(context.Background()); err == nil {
				t.Error("expected the store failure to propagate")
			}
		})
	}
}
