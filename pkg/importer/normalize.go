package importer

import (
	"net/url"
	"strings"

	"vitalog/domain"
	"vitalog/pkg/recipe"
)

// dinnerCategories is the fixed set of upstream meat/dietary/course labels
// that map to the internal dinner category.
var dinnerCategories = map[string]bool{
	"beef":          true,
	"chicken":       true,
	"lamb":          true,
	"pork":          true,
	"goat":          true,
	"seafood":       true,
	"pasta":         true,
	"vegan":         true,
	"vegetarian":    true,
	"side":          true,
	"starter":       true,
	"miscellaneous": true,
}

// MapCategory folds an upstream category label into the internal enum.
// Unrecognized labels land in "other".
func MapCategory(external string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(external)); {
	case normalized == "breakfast":
		return domain.CategoryBreakfast
	case normalized == "lunch":
		return domain.CategoryLunch
	case dinnerCategories[normalized]:
		return domain.CategoryDinner
	default:
		return domain.CategoryOther
	}
}

// SplitInstructions turns upstream free-text instructions into an ordered
// step list: split on line boundaries, trim, drop empties.
func SplitInstructions(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// ExtractMealID pulls an upstream meal id out of a shared URL: query
// parameters "i" and "mealId" win, else the last path segment.
func ExtractMealID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	query := parsed.Query()
	if id := query.Get("i"); id != "" {
		return id
	}
	if id := query.Get("mealId"); id != "" {
		return id
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

func normalizeMeal(meal *Meal, req domain.ImportRequest) recipe.NormalizedRecipe {
	category := MapCategory(meal.Category)
	if req.OverrideCategory != "" {
		category = req.OverrideCategory
	}

	return recipe.NormalizedRecipe{
		Title:          meal.Title,
		Category:       category,
		ImageURL:       meal.ImageURL,
		SourceURL:      meal.SourceURL,
		ExternalSource: SourceName,
		ExternalID:     meal.ID,
		IsPublic:       req.IsPublic == nil || *req.IsPublic,
		Published:      req.Published == nil || *req.Published,
		Ingredients:    meal.Ingredients,
		Steps:          SplitInstructions(meal.Instructions),
	}
}
