package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"` // "breakfast", "lunch", "dinner", "snack", "other"
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsPublic       bool      `json:"is_public"`
	Published      bool      `json:"published"`
	ExternalSource string    `gorm:"index:idx_recipes_external,unique,where:external_source <> ''" json:"external_source,omitempty"`
	ExternalID     string    `gorm:"index:idx_recipes_external,unique,where:external_source <> ''" json:"external_id,omitempty"`
	SourceURL      string    `json:"source_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"index" json:"recipe_id"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity string    `json:"quantity,omitempty"`
	Position int       `json:"position"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID    uuid.UUID `gorm:"index" json:"recipe_id"`
	StepNumber  int       `json:"step_number"`
	Instruction string    `gorm:"type:text" json:"instruction"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeNutrition holds at most one row per recipe; every field defaults to
// zero so hydration never has to null-check downstream.
type RecipeNutrition struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primary_key" json:"recipe_id"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein_g"`
	Carbs    float64   `json:"carbs_g"`
	Fat      float64   `json:"fat_g"`
	Fiber    float64   `json:"fiber_g"`
	Sugar    float64   `json:"sugar_g"`
	Sodium   float64   `json:"sodium_mg"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
