package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vitalog/domain"
	"vitalog/internal/utils"
)

// SourceName tags imported recipes; together with the upstream meal id it
// forms the dedup key.
const SourceName = "themealdb"

const defaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"

// maxIndexedIngredients is fixed by the upstream payload shape: every meal
// carries exactly 20 strIngredientN/strMeasureN pairs, most of them blank.
const maxIndexedIngredients = 20

type (
	// Meal is one upstream record with its indexed ingredient fields
	// already collapsed into a list.
	Meal struct {
		ID           string
		Title        string
		Category     string
		Instructions string
		ImageURL     string
		SourceURL    string
		Ingredients  []domain.IngredientInput
	}

	MealDBClient interface {
		LookupByID(ctx context.Context, id string) (*Meal, error)
		SearchByName(ctx context.Context, query string) ([]*Meal, error)
		FilterByCategory(ctx context.Context, category string) ([]string, error)
	}

	mealDBClient struct {
		baseURL string
		client  *http.Client
	}
)

func NewMealDBClient() MealDBClient {
	baseURL := utils.GetConfig("MEALDB_BASE_URL")
	if baseURL == "" {
		baseURL = defaultMealDBBaseURL
	}
	return NewMealDBClientWithBaseURL(baseURL)
}

func NewMealDBClientWithBaseURL(baseURL string) MealDBClient {
	return &mealDBClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type mealsEnvelope struct {
	Meals []map[string]any `json:"meals"`
}

func (c *mealDBClient) fetch(ctx context.Context, path string, query url.Values) (*mealsEnvelope, error) {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call recipe source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("recipe source error %d: %s", resp.StatusCode, string(body))
	}

	var envelope mealsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to parse recipe source response: %w", err)
	}
	return &envelope, nil
}

// LookupByID fetches one full meal record. An id unknown upstream returns
// (nil, nil), not an error.
func (c *mealDBClient) LookupByID(ctx context.Context, id string) (*Meal, error) {
	envelope, err := c.fetch(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(envelope.Meals) == 0 {
		return nil, nil
	}
	return parseMeal(envelope.Meals[0]), nil
}

func (c *mealDBClient) SearchByName(ctx context.Context, query string) ([]*Meal, error) {
	envelope, err := c.fetch(ctx, "search.php", url.Values{"s": {query}})
	if err != nil {
		return nil, err
	}

	meals := make([]*Meal, 0, len(envelope.Meals))
	for _, raw := range envelope.Meals {
		meals = append(meals, parseMeal(raw))
	}
	return meals, nil
}

// FilterByCategory returns meal ids only; category results arrive as
// summaries without instructions or ingredients, so each id needs a
// follow-up LookupByID.
func (c *mealDBClient) FilterByCategory(ctx context.Context, category string) ([]string, error) {
	envelope, err := c.fetch(ctx, "filter.php", url.Values{"c": {category}})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(envelope.Meals))
	for _, raw := range envelope.Meals {
		if id := stringField(raw, "idMeal"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseMeal(raw map[string]any) *Meal {
	meal := &Meal{
		ID:           stringField(raw, "idMeal"),
		Title:        stringField(raw, "strMeal"),
		Category:     stringField(raw, "strCategory"),
		Instructions: stringField(raw, "strInstructions"),
		ImageURL:     stringField(raw, "strMealThumb"),
		SourceURL:    stringField(raw, "strSource"),
	}

	for i := 1; i <= maxIndexedIngredients; i++ {
		name := strings.TrimSpace(stringField(raw, fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		meal.Ingredients = append(meal.Ingredients, domain.IngredientInput{
			Name:     name,
			Quantity: strings.TrimSpace(stringField(raw, fmt.Sprintf("strMeasure%d", i))),
		})
	}
	return meal
}

func stringField(raw map[string]any, key string) string {
	value, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return value
}
