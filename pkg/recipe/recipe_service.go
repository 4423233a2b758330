package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vitalog/domain"
	"vitalog/entities"
)

type (
	// NormalizedRecipe is a recipe already mapped to the internal shape,
	// ready to insert or upsert. The import pipeline produces these; the
	// admin create endpoint builds one from its request.
	NormalizedRecipe struct {
		Title          string
		Category       string
		Description    string
		ImageURL       string
		SourceURL      string
		ExternalSource string
		ExternalID     string
		IsPublic       bool
		Published      bool
		Ingredients    []domain.IngredientInput
		Steps          []string
		Nutrition      domain.NutritionFacts
	}

	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, creatorID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, viewerID string, isAdmin bool) ([]domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, recipeID, viewerID string, isAdmin bool) (domain.RecipeDetail, error)
		GetAdminRecipes(ctx context.Context, search string, limit int) ([]domain.AdminRecipeRow, error)
		DeleteRecipe(ctx context.Context, recipeID string) error

		ExternalRecipeExists(ctx context.Context, source, externalID string) (bool, error)
		UpsertRecipe(ctx context.Context, creatorID string, normalized NormalizedRecipe) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{recipeRepository: recipeRepository}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, creatorID string) (domain.RecipeDetail, error) {
	normalized := NormalizedRecipe{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SourceURL:   req.SourceURL,
		IsPublic:    req.IsPublic == nil || *req.IsPublic,
		Published:   req.Published == nil || *req.Published,
		Steps:       req.Steps,
		Nutrition:   req.Nutrition.NormalizedFacts(),
	}
	normalized.Ingredients = append(normalized.Ingredients, req.Ingredients...)

	recipeID, err := s.UpsertRecipe(ctx, creatorID, normalized)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return s.hydrate(ctx, recipe)
}

// UpsertRecipe inserts a new recipe or, when (external_source, external_id)
// already names one, updates it in place and replaces every child row.
func (s *recipeService) UpsertRecipe(ctx context.Context, creatorID string, normalized NormalizedRecipe) (string, error) {
	creator, err := uuid.Parse(creatorID)
	if err != nil {
		return "", err
	}

	var existing *entities.Recipe
	if normalized.ExternalSource != "" && normalized.ExternalID != "" {
		existing, err = s.recipeRepository.GetRecipeByExternalID(ctx, normalized.ExternalSource, normalized.ExternalID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}

	var recipe *entities.Recipe
	if existing != nil {
		recipe = existing
		recipe.Title = normalized.Title
		recipe.Category = normalized.Category
		recipe.Description = normalized.Description
		recipe.ImageURL = normalized.ImageURL
		recipe.SourceURL = normalized.SourceURL
		recipe.IsPublic = normalized.IsPublic
		recipe.Published = normalized.Published
		recipe.UpdatedAt = time.Now()
	} else {
		now := time.Now()
		recipe = &entities.Recipe{
			ID:             uuid.New(),
			UserID:         creator,
			Title:          normalized.Title,
			Category:       normalized.Category,
			Description:    normalized.Description,
			ImageURL:       normalized.ImageURL,
			SourceURL:      normalized.SourceURL,
			ExternalSource: normalized.ExternalSource,
			ExternalID:     normalized.ExternalID,
			IsPublic:       normalized.IsPublic,
			Published:      normalized.Published,
		}
		recipe.CreatedAt = now
		recipe.UpdatedAt = now
	}

	ingredients := make([]*entities.RecipeIngredient, 0, len(normalized.Ingredients))
	for i, ing := range normalized.Ingredients {
		ingredients = append(ingredients, &entities.RecipeIngredient{
			ID:       uuid.New(),
			RecipeID: recipe.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Position: i,
		})
	}

	steps := make([]*entities.RecipeStep, 0, len(normalized.Steps))
	for i, instruction := range normalized.Steps {
		steps = append(steps, &entities.RecipeStep{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			StepNumber:  i + 1,
			Instruction: instruction,
		})
	}

	nutrition := &entities.RecipeNutrition{
		RecipeID: recipe.ID,
		Calories: normalized.Nutrition.Calories,
		Protein:  normalized.Nutrition.Protein,
		Carbs:    normalized.Nutrition.Carbs,
		Fat:      normalized.Nutrition.Fat,
		Fiber:    normalized.Nutrition.Fiber,
		Sugar:    normalized.Nutrition.Sugar,
		Sodium:   normalized.Nutrition.Sodium,
	}

	if existing != nil {
		err = s.recipeRepository.UpdateRecipeReplaceChildren(ctx, recipe, ingredients, steps, nutrition)
	} else {
		err = s.recipeRepository.InsertRecipeWithChildren(ctx, recipe, ingredients, steps, nutrition)
	}
	if err != nil {
		return "", err
	}
	return recipe.ID.String(), nil
}

func (s *recipeService) ExternalRecipeExists(ctx context.Context, source, externalID string) (bool, error) {
	_, err := s.recipeRepository.GetRecipeByExternalID(ctx, source, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *recipeService) GetRecipes(ctx context.Context, viewerID string, isAdmin bool) ([]domain.RecipeDetail, error) {
	recipes, err := s.recipeRepository.GetVisibleRecipes(ctx, viewerID, isAdmin)
	if err != nil {
		return nil, err
	}

	details := make([]domain.RecipeDetail, 0, len(recipes))
	for _, r := range recipes {
		detail, err := s.hydrate(ctx, r)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string, isAdmin bool) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	visible := (recipe.IsPublic && recipe.Published) ||
		isAdmin ||
		(viewerID != "" && recipe.UserID.String() == viewerID)
	if !visible {
		// hidden recipes are indistinguishable from absent ones
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}

	return s.hydrate(ctx, recipe)
}

func (s *recipeService) GetAdminRecipes(ctx context.Context, search string, limit int) ([]domain.AdminRecipeRow, error) {
	recipes, err := s.recipeRepository.SearchRecipes(ctx, search, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AdminRecipeRow, 0, len(recipes))
	for _, r := range recipes {
		ingredientCount, stepCount, err := s.recipeRepository.CountChildren(ctx, r.ID.String())
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.AdminRecipeRow{
			ID:              r.ID.String(),
			Title:           r.Title,
			Category:        r.Category,
			IsPublic:        r.IsPublic,
			Published:       r.Published,
			ExternalSource:  r.ExternalSource,
			ExternalID:      r.ExternalID,
			IngredientCount: int(ingredientCount),
			StepCount:       int(stepCount),
			CreatedAt:       r.CreatedAt,
		})
	}
	return rows, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string) error {
	deleted, err := s.recipeRepository.DeleteRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// hydrate assembles the single served recipe shape: ordered ingredients,
// ordered instruction strings and an always-present nutrition object.
func (s *recipeService) hydrate(ctx context.Context, recipe *entities.Recipe) (domain.RecipeDetail, error) {
	ingredients, err := s.recipeRepository.GetIngredients(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	steps, err := s.recipeRepository.GetSteps(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	// Missing nutrition rows hydrate as zeros, never as nulls.
	facts := domain.NutritionFacts{}
	nutrition, err := s.recipeRepository.GetNutrition(ctx, recipe.ID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecipeDetail{}, err
	}
	if nutrition != nil {
		facts = domain.NutritionFacts{
			Calories: nutrition.Calories,
			Protein:  nutrition.Protein,
			Carbs:    nutrition.Carbs,
			Fat:      nutrition.Fat,
			Fiber:    nutrition.Fiber,
			Sugar:    nutrition.Sugar,
			Sodium:   nutrition.Sodium,
		}
	}

	ingredientViews := make([]domain.RecipeIngredientView, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientViews = append(ingredientViews, domain.RecipeIngredientView{
			ID:       ing.ID.String(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
		})
	}

	instructions := make([]string, 0, len(steps))
	for _, step := range steps {
		instructions = append(instructions, step.Instruction)
	}

	return domain.RecipeDetail{
		ID:           recipe.ID.String(),
		Title:        recipe.Title,
		Category:     recipe.Category,
		Description:  recipe.Description,
		ImageURL:     recipe.ImageURL,
		IsPublic:     recipe.IsPublic,
		Published:    recipe.Published,
		SourceURL:    recipe.SourceURL,
		Ingredients:  ingredientViews,
		Instructions: instructions,
		Nutrition:    facts,
		CreatedAt:    recipe.CreatedAt,
	}, nil
}
