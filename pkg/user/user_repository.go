package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"vitalog/entities"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		GetUsers(ctx context.Context) ([]*entities.User, error)
		GetUserBalance(ctx context.Context, userID string) (float64, error)
		GetActiveSubscription(ctx context.Context, userID string) (*entities.Subscription, error)

		CreateSession(ctx context.Context, session *entities.AuthSession) error
		GetSessionByToken(ctx context.Context, token string) (*entities.AuthSession, error)
		DeleteSession(ctx context.Context, token string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetUserBalance(ctx context.Context, userID string) (float64, error) {
	var balance entities.UserBalance
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance.Balance, nil
}

func (r *userRepository) GetActiveSubscription(ctx context.Context, userID string) (*entities.Subscription, error) {
	var sub entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "active").
		Order("expires_at desc").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *userRepository) CreateSession(ctx context.Context, session *entities.AuthSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *userRepository) GetSessionByToken(ctx context.Context, token string) (*entities.AuthSession, error) {
	var session entities.AuthSession
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession is idempotent; deleting an absent token is not an error.
func (r *userRepository) DeleteSession(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&entities.AuthSession{}).Error
}
