package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"vitalog/domain"
	"vitalog/internal/utils"
)

// TokenService signs the short-lived password-reset tokens mailed to users.
// Session bearer tokens are opaque random strings and never go through here.
type (
	TokenService interface {
		GenerateResetToken(email string, duration time.Duration) (string, error)
		ValidateResetToken(token string) (string, error)
	}

	resetClaims struct {
		Email string `json:"email"`
		jwt.RegisteredClaims
	}

	tokenService struct {
		secretKey string
		issuer    string
	}
)

func NewTokenService() TokenService {
	return &tokenService{
		secretKey: utils.GetConfig("JWT_SECRET"),
		issuer:    "VITALOG",
	}
}

func (t *tokenService) GenerateResetToken(email string, duration time.Duration) (string, error) {
	claims := resetClaims{
		email,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    t.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.secretKey))
}

func (t *tokenService) ValidateResetToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &resetClaims{}, func(t_ *jwt.Token) (any, error) {
		if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(t.secretKey), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrResetTokenInvalid
	}

	claims, ok := parsed.Claims.(*resetClaims)
	if !ok || claims.Email == "" {
		return "", domain.ErrResetTokenInvalid
	}
	return claims.Email, nil
}
