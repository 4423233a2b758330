package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"vitalog/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []any{
		&entities.User{},
		&entities.AuthSession{},
		&entities.Subscription{},
		&entities.UserBalance{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeStep{},
		&entities.RecipeNutrition{},
		&entities.Goal{},
		&entities.GoalProgress{},
		&entities.GlucoseReading{},
		&entities.Workout{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
