package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"vitalog/domain"
	"vitalog/internal/api/presenters"
	"vitalog/pkg/user"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(userService user.UserService) fiber.Handler
		OptionalAuthMiddleware(userService user.UserService) fiber.Handler
		AdminMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, PUT, DELETE, OPTIONS",
	})
}

// AuthMiddleware resolves the bearer token into a user and stores identity
// in Locals. Every protected route goes through here; there is no second
// token-lookup path anywhere else.
func (m *middleware) AuthMiddleware(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := userService.ResolveSession(c.Context(), bearerToken(c))
		if err != nil {
			// a store failure is not a bad credential
			if !errors.Is(err, domain.ErrUnauthorized) {
				return presenters.ErrorResponse(c, domain.MessageFailedProcessRequest, err)
			}
			return presenters.ErrorResponse(c, domain.MessageFailedGetToken, domain.ErrUnauthorized)
		}

		c.Locals("user_id", u.ID.String())
		c.Locals("is_admin", u.IsAdmin)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves a bearer token when one is presented but
// lets anonymous requests through. The public recipe list uses it to fold
// the caller's own recipes into the response.
func (m *middleware) OptionalAuthMiddleware(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if u, err := userService.ResolveSession(c.Context(), token); err == nil {
				c.Locals("user_id", u.ID.String())
				c.Locals("is_admin", u.IsAdmin)
			}
		}
		return c.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and rejects non-admin users.
func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("is_admin").(bool)
		if !isAdmin {
			return presenters.ErrorResponse(c, domain.MessageFailedProcessRequest, domain.ErrForbidden)
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
