package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vitalog/domain"
	"vitalog/pkg/recipe"
)

// bulkImportBudget bounds a bulk run, which may perform up to 50 upstream
// lookups plus as many enrichment calls.
const bulkImportBudget = 2 * time.Minute

type (
	ImportService interface {
		ImportFromExternalSource(ctx context.Context, req domain.ImportRequest, actorID string) (domain.ImportReport, error)
	}

	importService struct {
		recipeService recipe.RecipeService
		mealDB        MealDBClient
		nutrition     NutritionClient // nil disables enrichment
	}
)

func NewImportService(recipeService recipe.RecipeService, mealDB MealDBClient, nutrition NutritionClient) ImportService {
	return &importService{
		recipeService: recipeService,
		mealDB:        mealDB,
		nutrition:     nutrition,
	}
}

func (s *importService) ImportFromExternalSource(ctx context.Context, req domain.ImportRequest, actorID string) (domain.ImportReport, error) {
	switch {
	case req.ID != "" || req.URL != "":
		return s.importSingle(ctx, req, actorID)
	case req.Query != "" || req.Category != "":
		ctx, cancel := context.WithTimeout(ctx, bulkImportBudget)
		defer cancel()
		return s.importBulk(ctx, req, actorID)
	default:
		return domain.ImportReport{}, domain.ErrEmptyImport
	}
}

// importSingle always upserts, so re-importing a known id refreshes its
// content instead of skipping.
func (s *importService) importSingle(ctx context.Context, req domain.ImportRequest, actorID string) (domain.ImportReport, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = ExtractMealID(req.URL)
	}
	if id == "" {
		return domain.ImportReport{}, domain.ErrImportIDMissing
	}

	meal, err := s.mealDB.LookupByID(ctx, id)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}
	if meal == nil {
		return domain.ImportReport{}, domain.ErrRecipeNotFound
	}

	normalized := normalizeMeal(meal, req)
	normalized.Nutrition = s.enrich(ctx, normalized)

	recipeID, err := s.recipeService.UpsertRecipe(ctx, actorID, normalized)
	if err != nil {
		return domain.ImportReport{}, err
	}

	return domain.ImportReport{
		Inserted: 1,
		Items: []domain.ImportItemResult{{
			ExternalID: meal.ID,
			Title:      meal.Title,
			Outcome:    domain.ImportOutcomeInserted,
			RecipeID:   recipeID,
		}},
	}, nil
}

func (s *importService) importBulk(ctx context.Context, req domain.ImportRequest, actorID string) (domain.ImportReport, error) {
	limit := req.Limit
	if limit <= 0 || limit > domain.MaxBulkImportItems {
		limit = domain.MaxBulkImportItems
	}

	report := domain.ImportReport{Items: []domain.ImportItemResult{}}

	if req.Query != "" {
		meals, err := s.mealDB.SearchByName(ctx, req.Query)
		if err != nil {
			return report, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
		}
		if len(meals) > limit {
			meals = meals[:limit]
		}
		for _, meal := range meals {
			report.Items = append(report.Items, s.importItem(ctx, meal, req, actorID))
		}
	} else {
		ids, err := s.mealDB.FilterByCategory(ctx, req.Category)
		if err != nil {
			return report, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
		}
		if len(ids) > limit {
			ids = ids[:limit]
		}
		for _, id := range ids {
			// summary rows lack detail; each one needs its own lookup,
			// and a failed lookup only fails that item
			meal, err := s.mealDB.LookupByID(ctx, id)
			if err != nil || meal == nil {
				result := domain.ImportItemResult{
					ExternalID: id,
					Outcome:    domain.ImportOutcomeFailed,
					Reason:     "detail lookup failed",
				}
				if err != nil {
					result.Reason = err.Error()
				}
				report.Items = append(report.Items, result)
				continue
			}
			report.Items = append(report.Items, s.importItem(ctx, meal, req, actorID))
		}
	}

	for _, item := range report.Items {
		switch item.Outcome {
		case domain.ImportOutcomeInserted:
			report.Inserted++
		case domain.ImportOutcomeSkipped:
			report.Skipped++
		}
	}
	return report, nil
}

// importItem processes one bulk record: already-imported ids are skipped,
// new ones are inserted with their children; any failure is contained in
// the item's own result.
func (s *importService) importItem(ctx context.Context, meal *Meal, req domain.ImportRequest, actorID string) domain.ImportItemResult {
	result := domain.ImportItemResult{
		ExternalID: meal.ID,
		Title:      meal.Title,
	}

	exists, err := s.recipeService.ExternalRecipeExists(ctx, SourceName, meal.ID)
	if err != nil {
		result.Outcome = domain.ImportOutcomeFailed
		result.Reason = err.Error()
		return result
	}
	if exists {
		result.Outcome = domain.ImportOutcomeSkipped
		return result
	}

	normalized := normalizeMeal(meal, req)
	normalized.Nutrition = s.enrich(ctx, normalized)

	recipeID, err := s.recipeService.UpsertRecipe(ctx, actorID, normalized)
	if err != nil {
		result.Outcome = domain.ImportOutcomeFailed
		result.Reason = err.Error()
		return result
	}

	result.Outcome = domain.ImportOutcomeInserted
	result.RecipeID = recipeID
	return result
}

// enrich degrades silently: no client or a failed call both mean zeros.
func (s *importService) enrich(ctx context.Context, normalized recipe.NormalizedRecipe) domain.NutritionFacts {
	if s.nutrition == nil {
		return domain.NutritionFacts{}
	}

	lines := make([]string, 0, len(normalized.Ingredients))
	for _, ing := range normalized.Ingredients {
		lines = append(lines, strings.TrimSpace(ing.Quantity+" "+ing.Name))
	}

	facts, err := s.nutrition.Analyze(ctx, normalized.Title, lines)
	if err != nil {
		return domain.NutritionFacts{}
	}
	return facts
}
