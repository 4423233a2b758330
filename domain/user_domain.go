package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "account registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessLogout         = "logged out"
	MessageSuccessGetProfile     = "success get profile"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register account"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetProfile     = "failed to get profile"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDemotion       = errors.New("cannot remove your own admin role")
	ErrResetTokenInvalid  = errors.New("password reset token invalid or expired")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"omitempty,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	UpdateUserRolesRequest struct {
		IsAdmin        *bool `json:"is_admin"`
		IsNutritionist *bool `json:"is_nutritionist"`
	}

	UserProfile struct {
		ID             string    `json:"id"`
		Email          string    `json:"email"`
		Name           string    `json:"name,omitempty"`
		IsAdmin        bool      `json:"is_admin"`
		IsNutritionist bool      `json:"is_nutritionist"`
		CreatedAt      time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string      `json:"token"`
		User  UserProfile `json:"user"`
	}

	// AdminUserRow carries the balance/subscription projection the admin
	// user list shows alongside role flags.
	AdminUserRow struct {
		UserProfile
		Balance          float64 `json:"balance"`
		SubscriptionPlan string  `json:"subscription_plan,omitempty"`
	}
)
