package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"vitalog/internal/api/handlers"
	"vitalog/internal/api/routes"
	"vitalog/internal/middleware"
	"vitalog/internal/utils"
	"vitalog/internal/utils/storage"
	"vitalog/pkg/goal"
	"vitalog/pkg/importer"
	"vitalog/pkg/recipe"
	"vitalog/pkg/token"
	"vitalog/pkg/tracking"
	"vitalog/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	goalRepository := goal.NewGoalRepository(db)
	trackingRepository := tracking.NewTrackingRepository(db)

	// Service
	tokenService := token.NewTokenService()
	userService := user.NewUserService(userRepository, tokenService)
	recipeService := recipe.NewRecipeService(recipeRepository)
	importService := importer.NewImportService(
		recipeService,
		importer.NewMealDBClient(),
		importer.NewNutritionClient(),
	)
	goalService := goal.NewGoalService(goalRepository)
	trackingService := tracking.NewTrackingService(trackingRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, importService, s3, validator)
	goalHandler := handlers.NewGoalHandler(goalService, validator)
	trackingHandler := handlers.NewTrackingHandler(trackingService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		GoalHandler:     goalHandler,
		TrackingHandler: trackingHandler,
		Middleware:      middlewares,
		UserService:     userService,
	}
	routesConfig.Setup()
	return app, nil
}
