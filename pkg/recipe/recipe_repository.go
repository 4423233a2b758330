package recipe

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vitalog/entities"
)

type (
	RecipeRepository interface {
		InsertRecipeWithChildren(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, nutrition *entities.RecipeNutrition) error
		UpdateRecipeReplaceChildren(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, nutrition *entities.RecipeNutrition) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeByExternalID(ctx context.Context, source, externalID string) (*entities.Recipe, error)
		GetVisibleRecipes(ctx context.Context, viewerID string, isAdmin bool) ([]*entities.Recipe, error)
		SearchRecipes(ctx context.Context, search string, limit int) ([]*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) (int64, error)

		GetIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error)
		GetSteps(ctx context.Context, recipeID string) ([]*entities.RecipeStep, error)
		GetNutrition(ctx context.Context, recipeID string) (*entities.RecipeNutrition, error)
		CountChildren(ctx context.Context, recipeID string) (ingredients int64, steps int64, err error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// InsertRecipeWithChildren writes the recipe row, its children and its
// nutrition row as one transaction; a failed insert leaves nothing behind.
func (r *recipeRepository) InsertRecipeWithChildren(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, nutrition *entities.RecipeNutrition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(ingredients).Error; err != nil {
				return err
			}
		}
		if len(steps) > 0 {
			if err := tx.Create(steps).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(nutrition).Error
	})
}

// UpdateRecipeReplaceChildren updates the base row and swaps the full child
// set (delete then reinsert, the explicit replacement contract) atomically.
func (r *recipeRepository) UpdateRecipeReplaceChildren(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, nutrition *entities.RecipeNutrition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeStep{}).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(ingredients).Error; err != nil {
				return err
			}
		}
		if len(steps) > 0 {
			if err := tx.Create(steps).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(nutrition).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByExternalID(ctx context.Context, source, externalID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("external_source = ? AND external_id = ?", source, externalID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetVisibleRecipes(ctx context.Context, viewerID string, isAdmin bool) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).Order("created_at desc")

	switch {
	case isAdmin:
		// admins see everything
	case viewerID != "":
		query = query.Where("(is_public = ? AND published = ?) OR user_id = ?", true, true, viewerID)
	default:
		query = query.Where("is_public = ? AND published = ?", true, true)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) SearchRecipes(ctx context.Context, search string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// DeleteRecipe removes the recipe and all of its child rows in one
// transaction and reports how many recipe rows went away.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeNutrition{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *recipeRepository) GetIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error) {
	var ingredients []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("position asc, id asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) GetSteps(ctx context.Context, recipeID string) ([]*entities.RecipeStep, error) {
	var steps []*entities.RecipeStep
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number asc").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *recipeRepository) GetNutrition(ctx context.Context, recipeID string) (*entities.RecipeNutrition, error) {
	var nutrition entities.RecipeNutrition
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		First(&nutrition).Error; err != nil {
		return nil, err
	}
	return &nutrition, nil
}

func (r *recipeRepository) CountChildren(ctx context.Context, recipeID string) (int64, int64, error) {
	var ingredients, steps int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Where("recipe_id = ?", recipeID).
		Count(&ingredients).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeStep{}).
		Where("recipe_id = ?", recipeID).
		Count(&steps).Error; err != nil {
		return 0, 0, err
	}
	return ingredients, steps, nil
}
