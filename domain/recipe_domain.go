package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrInvalidCategory = errors.New("invalid recipe category")
)

// Recipe categories. Anything a mapping cannot place lands in CategoryOther.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnack     = "snack"
	CategoryOther     = "other"
)

type (
	// CreateRecipeRequest accepts both naming conventions for nutrition
	// fields ("protein" and "protein_g"); NutritionInput normalizes them.
	CreateRecipeRequest struct {
		Title       string                  `json:"title" validate:"required,max=200"`
		Category    string                  `json:"category" validate:"required,oneof=breakfast lunch dinner snack other"`
		Description string                  `json:"description,omitempty" validate:"max=2000"`
		ImageURL    string                  `json:"image_url,omitempty" validate:"omitempty,url"`
		IsPublic    *bool                   `json:"is_public"`
		Published   *bool                   `json:"published"`
		SourceURL   string                  `json:"source_url,omitempty" validate:"omitempty,url"`
		Ingredients []IngredientInput       `json:"ingredients" validate:"dive"`
		Steps       []string                `json:"steps"`
		Nutrition   *NutritionInput         `json:"nutrition,omitempty"`
	}

	IngredientInput struct {
		Name     string `json:"name" validate:"required,max=200"`
		Quantity string `json:"quantity,omitempty" validate:"max=100"`
	}

	NutritionInput struct {
		Calories *float64 `json:"calories" validate:"omitempty,gte=0"`

		Protein  *float64 `json:"protein" validate:"omitempty,gte=0"`
		ProteinG *float64 `json:"protein_g" validate:"omitempty,gte=0"`
		Carbs    *float64 `json:"carbs" validate:"omitempty,gte=0"`
		CarbsG   *float64 `json:"carbs_g" validate:"omitempty,gte=0"`
		Fat      *float64 `json:"fat" validate:"omitempty,gte=0"`
		FatG     *float64 `json:"fat_g" validate:"omitempty,gte=0"`
		Fiber    *float64 `json:"fiber" validate:"omitempty,gte=0"`
		FiberG   *float64 `json:"fiber_g" validate:"omitempty,gte=0"`
		Sugar    *float64 `json:"sugar" validate:"omitempty,gte=0"`
		SugarG   *float64 `json:"sugar_g" validate:"omitempty,gte=0"`
		Sodium   *float64 `json:"sodium" validate:"omitempty,gte=0"`
		SodiumMg *float64 `json:"sodium_mg" validate:"omitempty,gte=0"`
	}

	RecipeIngredientView struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity,omitempty"`
	}

	NutritionFacts struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein_g"`
		Carbs    float64 `json:"carbs_g"`
		Fat      float64 `json:"fat_g"`
		Fiber    float64 `json:"fiber_g"`
		Sugar    float64 `json:"sugar_g"`
		Sodium   float64 `json:"sodium_mg"`
	}

	// RecipeDetail is the one hydrated shape every recipe endpoint serves.
	RecipeDetail struct {
		ID           string                 `json:"id"`
		Title        string                 `json:"title"`
		Category     string                 `json:"category"`
		Description  string                 `json:"description,omitempty"`
		ImageURL     string                 `json:"image_url,omitempty"`
		IsPublic     bool                   `json:"is_public"`
		Published    bool                   `json:"published"`
		SourceURL    string                 `json:"source_url,omitempty"`
		Ingredients  []RecipeIngredientView `json:"ingredients"`
		Instructions []string               `json:"instructions"`
		Nutrition    NutritionFacts         `json:"nutrition"`
		CreatedAt    time.Time              `json:"created_at"`
	}

	// AdminRecipeRow is the admin catalog summary with child counts.
	AdminRecipeRow struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Category        string    `json:"category"`
		IsPublic        bool      `json:"is_public"`
		Published       bool      `json:"published"`
		ExternalSource  string    `json:"external_source,omitempty"`
		ExternalID      string    `json:"external_id,omitempty"`
		IngredientCount int       `json:"ingredient_count"`
		StepCount       int       `json:"step_count"`
		CreatedAt       time.Time `json:"created_at"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)

// NormalizedFacts folds the dual-key nutrition convention into the single
// internal one. A field present under both names resolves to the suffixed key.
func (n *NutritionInput) NormalizedFacts() NutritionFacts {
	pick := func(suffixed, plain *float64) float64 {
		if suffixed != nil {
			return *suffixed
		}
		if plain != nil {
			return *plain
		}
		return 0
	}

	if n == nil {
		return NutritionFacts{}
	}
	facts := NutritionFacts{
		Protein: pick(n.ProteinG, n.Protein),
		Carbs:   pick(n.CarbsG, n.Carbs),
		Fat:     pick(n.FatG, n.Fat),
		Fiber:   pick(n.FiberG, n.Fiber),
		Sugar:   pick(n.SugarG, n.Sugar),
		Sodium:  pick(n.SodiumMg, n.Sodium),
	}
	if n.Calories != nil {
		facts.Calories = *n.Calories
	}
	return facts
}
