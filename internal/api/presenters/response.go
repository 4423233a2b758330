package presenters

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vitalog/domain"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse is the one place domain errors turn into HTTP statuses.
// Handlers never pick status codes themselves.
func ErrorResponse(c *fiber.Ctx, message string, err error) error {
	body := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()
	}
	return c.Status(statusOf(err)).JSON(body)
}

func statusOf(err error) int {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return fiber.StatusBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrResetTokenInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrSelfDemotion):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidDelta),
		errors.Is(err, domain.ErrImportIDMissing),
		errors.Is(err, domain.ErrEmptyImport):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUpstreamFetch):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
