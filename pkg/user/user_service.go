package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vitalog/domain"
	"vitalog/entities"
	"vitalog/internal/utils/mailing"
	"vitalog/pkg/token"
)

const (
	// SessionTTL is how long a bearer token stays resolvable.
	SessionTTL = 30 * 24 * time.Hour

	resetTokenTTL  = 30 * time.Minute
	sessionByteLen = 32 // 256 bits of entropy
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Logout(ctx context.Context, sessionToken string) error
		ResolveSession(ctx context.Context, sessionToken string) (*entities.User, error)
		Me(ctx context.Context, userID string) (domain.UserProfile, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		GetUsers(ctx context.Context) ([]domain.AdminUserRow, error)
		UpdateUserRoles(ctx context.Context, targetID string, req domain.UpdateUserRolesRequest, actorID string) (domain.UserProfile, error)
	}

	userService struct {
		userRepository UserRepository
		tokenService   token.TokenService
	}
)

func NewUserService(userRepository UserRepository, tokenService token.TokenService) UserService {
	return &userService{
		userRepository: userRepository,
		tokenService:   tokenService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.AuthResponse{}, domain.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if isUniqueViolation(err) {
			// lost the race against a concurrent signup for the same
			// address; the unique index is the backstop the pre-check
			// cannot give
			return domain.AuthResponse{}, domain.ErrEmailTaken
		}
		return domain.AuthResponse{}, err
	}

	return s.issueSession(ctx, user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if user.PasswordHash == "" {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

func (s *userService) issueSession(ctx context.Context, user *entities.User) (domain.AuthResponse, error) {
	sessionToken, err := generateSessionToken()
	if err != nil {
		return domain.AuthResponse{}, err
	}

	now := time.Now()
	session := &entities.AuthSession{
		Token:     sessionToken,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.userRepository.CreateSession(ctx, session); err != nil {
		return domain.AuthResponse{}, err
	}

	return domain.AuthResponse{
		Token: sessionToken,
		User:  toProfile(user),
	}, nil
}

// isUniqueViolation reports whether err is the database rejecting a
// duplicate key (Postgres error class 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func generateSessionToken() (string, error) {
	bytes := make([]byte, sessionByteLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func (s *userService) Logout(ctx context.Context, sessionToken string) error {
	return s.userRepository.DeleteSession(ctx, sessionToken)
}

// ResolveSession is the one canonical bearer-token lookup. Absent, unknown
// and expired tokens all come back as ErrUnauthorized.
func (s *userService) ResolveSession(ctx context.Context, sessionToken string) (*entities.User, error) {
	if sessionToken == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.userRepository.GetSessionByToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !time.Now().Before(session.ExpiresAt) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepository.GetUserByID(ctx, session.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}
	return toProfile(user), nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No account, no email. Respond as success so the endpoint
			// cannot be used to probe registered addresses.
			return nil
		}
		return err
	}

	resetToken, err := s.tokenService.GenerateResetToken(user.Email, resetTokenTTL)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Use this token to reset your password (valid for 30 minutes):</p><p><b>%s</b></p>",
		user.Name, resetToken,
	)
	return mailing.SendMail(user.Email, "Reset your password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := s.tokenService.ValidateResetToken(req.Token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) GetUsers(ctx context.Context) ([]domain.AdminUserRow, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AdminUserRow, 0, len(users))
	for _, u := range users {
		// absent rows already come back as zero/nil from the repository;
		// anything else is an infrastructure failure, not a blank balance
		balance, err := s.userRepository.GetUserBalance(ctx, u.ID.String())
		if err != nil {
			return nil, err
		}
		sub, err := s.userRepository.GetActiveSubscription(ctx, u.ID.String())
		if err != nil {
			return nil, err
		}

		row := domain.AdminUserRow{UserProfile: toProfile(u), Balance: balance}
		if sub != nil {
			row.SubscriptionPlan = sub.Plan
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *userService) UpdateUserRoles(ctx context.Context, targetID string, req domain.UpdateUserRolesRequest, actorID string) (domain.UserProfile, error) {
	if targetID == actorID && req.IsAdmin != nil && !*req.IsAdmin {
		return domain.UserProfile{}, domain.ErrSelfDemotion
	}

	user, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}

	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsNutritionist != nil {
		user.IsNutritionist = *req.IsNutritionist
	}
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserProfile{}, err
	}
	return toProfile(user), nil
}

func toProfile(user *entities.User) domain.UserProfile {
	return domain.UserProfile{
		ID:             user.ID.String(),
		Email:          user.Email,
		Name:           user.Name,
		IsAdmin:        user.IsAdmin,
		IsNutritionist: user.IsNutritionist,
		CreatedAt:      user.CreatedAt,
	}
}
