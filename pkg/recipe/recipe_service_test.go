package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vitalog/domain"
	"vitalog/entities"
)

// fakeRecipeRepository keeps everything in maps keyed by recipe id and
// mirrors the repository's replace-children contract.
type fakeRecipeRepository struct {
	recipes     map[string]*entities.Recipe
	ingredients map[string][]*entities.RecipeIngredient
	steps       map[string][]*entities.RecipeStep
	nutrition   map[string]*entities.RecipeNutrition
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:     map[string]*entities.Recipe{},
		ingredients: map[string][]*entities.RecipeIngredient{},
		steps:       map[string][]*entities.RecipeStep{},
		nutrition:   map[string]*entities.RecipeNutrition{},
	}
}

func (f *fakeRecipeRepository) InsertRecipeWithChildren(_ context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, nutrition *entities.RecipeNutrition) error {
	id := recipe.ID.String()
	f.recipes[id] = recipe
	f.ingredients[id] = ingredients
	f.steps[id] = steps
	f.nutrition[id] = nutrition
	return nil
}

func (f *fakeRecipeRepository) UpdateRecipeReplaceChildren(_ context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, nutrition *entities.RecipeNutrition) error {
	id := recipe.ID.String()
	f.recipes[id] = recipe
	f.ingredients[id] = ingredients
	f.steps[id] = steps
	f.nutrition[id] = nutrition
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) GetRecipeByExternalID(_ context.Context, source, externalID string) (*entities.Recipe, error) {
	for _, recipe := range f.recipes {
		if recipe.ExternalSource == source && recipe.ExternalID == externalID {
			return recipe, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepository) GetVisibleRecipes(_ context.Context, viewerID string, isAdmin bool) ([]*entities.Recipe, error) {
	var visible []*entities.Recipe
	for _, recipe := range f.recipes {
		switch {
		case isAdmin:
		case recipe.IsPublic && recipe.Published:
		case viewerID != "" && recipe.UserID.String() == viewerID:
		default:
			continue
		}
		visible = append(visible, recipe)
	}
	return visible, nil
}

func (f *fakeRecipeRepository) SearchRecipes(_ context.Context, _ string, limit int) ([]*entities.Recipe, error) {
	var all []*entities.Recipe
	for _, recipe := range f.recipes {
		if len(all) == limit {
			break
		}
		all = append(all, recipe)
	}
	return all, nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) (int64, error) {
	if _, ok := f.recipes[id]; !ok {
		return 0, nil
	}
	delete(f.recipes, id)
	delete(f.ingredients, id)
	delete(f.steps, id)
	delete(f.nutrition, id)
	return 1, nil
}

func (f *fakeRecipeRepository) GetIngredients(_ context.Context, recipeID string) ([]*entities.RecipeIngredient, error) {
	return f.ingredients[recipeID], nil
}

func (f *fakeRecipeRepository) GetSteps(_ context.Context, recipeID string) ([]*entities.RecipeStep, error) {
	return f.steps[recipeID], nil
}

func (f *fakeRecipeRepository) GetNutrition(_ context.Context, recipeID string) (*entities.RecipeNutrition, error) {
	nutrition, ok := f.nutrition[recipeID]
	if !ok || nutrition == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return nutrition, nil
}

func (f *fakeRecipeRepository) CountChildren(_ context.Context, recipeID string) (int64, int64, error) {
	return int64(len(f.ingredients[recipeID])), int64(len(f.steps[recipeID])), nil
}

var creatorID = uuid.New().String()

func normalizedFixture(externalID string) NormalizedRecipe {
	return NormalizedRecipe{
		Title:          "Teriyaki Chicken Casserole",
		Category:       domain.CategoryDinner,
		ExternalSource: "themealdb",
		ExternalID:     externalID,
		IsPublic:       true,
		Published:      true,
		Ingredients: []domain.IngredientInput{
			{Name: "soy sauce", Quantity: "3/4 cup"},
			{Name: "chicken breasts", Quantity: "3"},
		},
		Steps:     []string{"Preheat oven.", "Combine and bake."},
		Nutrition: domain.NutritionFacts{Calories: 420, Protein: 31},
	}
}

func TestUpsertRecipeInsertsNew(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo)

	recipeID, err := service.UpsertRecipe(context.Background(), creatorID, normalizedFixture("52772"))
	if err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	stored, ok := repo.recipes[recipeID]
	if !ok {
		t.Fatal("recipe row not inserted")
	}
	if stored.UserID.String() != creatorID {
		t.Errorf("creator = %s, want %s", stored.UserID, creatorID)
	}
	if len(repo.ingredients[recipeID]) != 2 || len(repo.steps[recipeID]) != 2 {
		t.Errorf("children = %d ingredients, %d steps, want 2/2",
			len(repo.ingredients[recipeID]), len(repo.steps[recipeID]))
	}
	if repo.ingredients[recipeID][1].Position != 1 {
		t.Errorf("ingredient positions not assigned in order")
	}
	if repo.steps[recipeID][0].StepNumber != 1 || repo.steps[recipeID][1].StepNumber != 2 {
		t.Errorf("step numbers not assigned in order")
	}
	if repo.nutrition[recipeID].Calories != 420 {
		t.Errorf("nutrition row = %+v", repo.nutrition[recipeID])
	}
}

// A second upsert with the same external key must keep the recipe id stable
// and leave only the newer child rows behind.
func TestUpsertRecipeIsIdempotentPerExternalKey(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo)
	ctx := context.Background()

	firstID, err := service.UpsertRecipe(ctx, creatorID, normalizedFixture("52772"))
	if err != nil {
		t.Fatalf("first UpsertRecipe: %v", err)
	}

	updated := normalizedFixture("52772")
	updated.Title = "Teriyaki Chicken Casserole (revised)"
	updated.Ingredients = []domain.IngredientInput{{Name: "tamari", Quantity: "1/2 cup"}}
	updated.Steps = []string{"Mix.", "Bake.", "Rest."}

	secondID, err := service.UpsertRecipe(ctx, creatorID, updated)
	if err != nil {
		t.Fatalf("second UpsertRecipe: %v", err)
	}

	if secondID != firstID {
		t.Fatalf("recipe id changed across upserts: %s then %s", firstID, secondID)
	}
	if len(repo.recipes) != 1 {
		t.Errorf("got %d recipe rows, want 1", len(repo.recipes))
	}
	if repo.recipes[firstID].Title != "Teriyaki Chicken Casserole (revised)" {
		t.Errorf("title not refreshed: %q", repo.recipes[firstID].Title)
	}
	if len(repo.ingredients[firstID]) != 1 || repo.ingredients[firstID][0].Name != "tamari" {
		t.Errorf("old ingredients not replaced: %+v", repo.ingredients[firstID])
	}
	if len(repo.steps[firstID]) != 3 {
		t.Errorf("old steps not replaced: %d rows", len(repo.steps[firstID]))
	}
}

func TestUpsertRecipeDistinctExternalIDs(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo)
	ctx := context.Background()

	firstID, err := service.UpsertRecipe(ctx, creatorID, normalizedFixture("1"))
	if err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}
	secondID, err := service.UpsertRecipe(ctx, creatorID, normalizedFixture("2"))
	if err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}
	if firstID == secondID {
		t.Error("distinct external ids collapsed into one recipe")
	}
}

func TestCreateRecipeDefaultsVisibility(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo)

	detail, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:    "Oatmeal",
		Category: domain.CategoryBreakfast,
		Steps:    []string{"Boil oats."},
	}, creatorID)
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if !detail.IsPublic || !detail.Published {
		t.Errorf("is_public=%v published=%v, want both true by default", detail.IsPublic, detail.Published)
	}
}

// A recipe without children still hydrates with empty lists and a zero
// nutrition object, never nulls.
func TestGetRecipeDetailHydratesEmptyChildren(t *testing.T) {
	repo := newFakeRecipeRepository()
	owner := uuid.New()
	bare := &entities.Recipe{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     "Plain toast",
		Category:  domain.CategoryBreakfast,
		IsPublic:  true,
		Published: true,
	}
	repo.recipes[bare.ID.String()] = bare

	service := NewRecipeService(repo)
	detail, err := service.GetRecipeDetail(context.Background(), bare.ID.String(), "", false)
	if err != nil {
		t.Fatalf("GetRecipeDetail: %v", err)
	}

	if detail.Ingredients == nil || len(detail.Ingredients) != 0 {
		t.Errorf("ingredients = %#v, want empty non-nil list", detail.Ingredients)
	}
	if detail.Instructions == nil || len(detail.Instructions) != 0 {
		t.Errorf("instructions = %#v, want empty non-nil list", detail.Instructions)
	}
	if detail.Nutrition != (domain.NutritionFacts{}) {
		t.Errorf("nutrition = %+v, want zeros", detail.Nutrition)
	}
}

func TestGetRecipeDetailVisibility(t *testing.T) {
	repo := newFakeRecipeRepository()
	owner := uuid.New()
	private := &entities.Recipe{
		ID:       uuid.New(),
		UserID:   owner,
		Title:    "Secret sauce",
		Category: domain.CategoryOther,
	}
	repo.recipes[private.ID.String()] = private
	service := NewRecipeService(repo)

	tests := []struct {
		name     string
		viewerID string
		isAdmin  bool
		wantErr  error
	}{
		{name: "anonymous viewer", viewerID: "", wantErr: domain.ErrRecipeNotFound},
		{name: "other user", viewerID: uuid.New().String(), wantErr: domain.ErrRecipeNotFound},
		{name: "owner", viewerID: owner.String()},
		{name: "admin", viewerID: uuid.New().String(), isAdmin: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := service.GetRecipeDetail(context.Background(), private.ID.String(), test.viewerID, test.isAdmin)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("err = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestGetRecipeDetailUnknownID(t *testing.T) {
	service := NewRecipeService(newFakeRecipeRepository())

	_, err := service.GetRecipeDetail(context.Background(), uuid.New().String(), "", true)
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("err = %v, want ErrRecipeNotFound", err)
	}
}

func TestDeleteRecipe(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo)

	recipeID, err := service.UpsertRecipe(context.Background(), creatorID, normalizedFixture("52772"))
	if err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	if err := service.DeleteRecipe(context.Background(), recipeID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if _, ok := repo.recipes[recipeID]; ok {
		t.Error("recipe row survived deletion")
	}
	if len(repo.ingredients[recipeID]) != 0 || len(repo.steps[recipeID]) != 0 {
		t.Error("child rows survived deletion")
	}

	if err := service.DeleteRecipe(context.Background(), recipeID); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("second delete err = %v, want ErrRecipeNotFound", err)
	}
}

func TestExternalRecipeExists(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo)

	if _, err := service.UpsertRecipe(context.Background(), creatorID, normalizedFixture("52772")); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	exists, err := service.ExternalRecipeExists(context.Background(), "themealdb", "52772")
	if err != nil || !exists {
		t.Errorf("exists = %v, err = %v; want true, nil", exists, err)
	}

	exists, err = service.ExternalRecipeExists(context.Background(), "themealdb", "99999")
	if err != nil || exists {
		t.Errorf("exists = %v, err = %v; want false, nil", exists, err)
	}
}
