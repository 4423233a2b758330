package routes

import (
	"github.com/gofiber/fiber/v2"

	"vitalog/internal/api/handlers"
	"vitalog/internal/middleware"
	"vitalog/pkg/user"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	GoalHandler     handlers.GoalHandler
	TrackingHandler handlers.TrackingHandler
	Middleware      middleware.Middleware
	UserService     user.UserService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Recipes()
	c.Admin()
	c.Goals()
	c.Tracking()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/signup", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		// logout skips the auth middleware so repeating it after the
		// session is gone still succeeds
		auth.Post("/logout", c.UserHandler.Logout)
		auth.Delete("/logout", c.UserHandler.Logout)
		auth.Post("/forgot", c.UserHandler.ForgotPassword)
		auth.Post("/reset", c.UserHandler.ResetPassword)
	}

	c.App.Get("/api/v1/users/me", c.Middleware.AuthMiddleware(c.UserService), c.UserHandler.Me)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.UserService), c.RecipeHandler.GetRecipes)
		recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.UserService), c.RecipeHandler.GetRecipeDetail)
		recipes.Post("",
			c.Middleware.AuthMiddleware(c.UserService),
			c.Middleware.AdminMiddleware(),
			c.RecipeHandler.CreateRecipe,
		)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin",
		c.Middleware.AuthMiddleware(c.UserService),
		c.Middleware.AdminMiddleware(),
	)
	{
		admin.Get("/recipes", c.RecipeHandler.GetAdminRecipes)
		admin.Delete("/recipes/:id", c.RecipeHandler.DeleteRecipe)
		admin.Post("/recipes/import", c.RecipeHandler.ImportRecipes)
		admin.Post("/recipes/image", c.RecipeHandler.UploadRecipeImage)

		admin.Get("/users", c.UserHandler.GetUsers)
		admin.Patch("/users/:id", c.UserHandler.UpdateUserRoles)
	}
}

func (c *Config) Goals() {
	goals := c.App.Group("/api/v1/goals", c.Middleware.AuthMiddleware(c.UserService))
	{
		goals.Get("", c.GoalHandler.GetGoals)
		goals.Post("", c.GoalHandler.CreateGoal)
		goals.Post("/:id/progress", c.GoalHandler.RecordProgress)
	}
}

func (c *Config) Tracking() {
	tracking := c.App.Group("/api/v1", c.Middleware.AuthMiddleware(c.UserService))
	{
		tracking.Get("/glucose", c.TrackingHandler.GetGlucoseReadings)
		tracking.Post("/glucose", c.TrackingHandler.AddGlucoseReading)
		tracking.Get("/workouts", c.TrackingHandler.GetWorkouts)
		tracking.Post("/workouts", c.TrackingHandler.AddWorkout)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
