package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"vitalog/domain"
	"vitalog/internal/utils"
)

const defaultNutritionAPIURL = "https://api.edamam.com/api/nutrition-details"

type (
	// NutritionClient asks a nutrition-analysis service to estimate facts
	// for a recipe from its title and ingredient lines.
	NutritionClient interface {
		Analyze(ctx context.Context, title string, ingredientLines []string) (domain.NutritionFacts, error)
	}

	nutritionClient struct {
		apiURL string
		appID  string
		appKey string
		client *http.Client
	}
)

// NewNutritionClient returns nil when no credential pair is configured;
// the import pipeline treats a nil client as enrichment disabled.
func NewNutritionClient() NutritionClient {
	appID := utils.GetConfig("NUTRITION_APP_ID")
	appKey := utils.GetConfig("NUTRITION_APP_KEY")
	if appID == "" || appKey == "" {
		return nil
	}

	apiURL := utils.GetConfig("NUTRITION_API_URL")
	if apiURL == "" {
		apiURL = defaultNutritionAPIURL
	}
	return NewNutritionClientWithCredentials(apiURL, appID, appKey)
}

func NewNutritionClientWithCredentials(apiURL, appID, appKey string) NutritionClient {
	return &nutritionClient{
		apiURL: apiURL,
		appID:  appID,
		appKey: appKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type nutritionResponse struct {
	Calories       float64 `json:"calories"`
	TotalNutrients map[string]struct {
		Quantity float64 `json:"quantity"`
	} `json:"totalNutrients"`
}

func (c *nutritionClient) Analyze(ctx context.Context, title string, ingredientLines []string) (domain.NutritionFacts, error) {
	payload, err := json.Marshal(map[string]any{
		"title": title,
		"ingr":  ingredientLines,
	})
	if err != nil {
		return domain.NutritionFacts{}, err
	}

	u := fmt.Sprintf("%s?app_id=%s&app_key=%s", c.apiURL, c.appID, c.appKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return domain.NutritionFacts{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.NutritionFacts{}, fmt.Errorf("failed to call nutrition API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.NutritionFacts{}, fmt.Errorf("nutrition API error %d: %s", resp.StatusCode, string(body))
	}

	var nr nutritionResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return domain.NutritionFacts{}, fmt.Errorf("failed to parse nutrition response: %w", err)
	}

	quantity := func(key string) float64 {
		return math.Round(nr.TotalNutrients[key].Quantity)
	}

	// Nutrient keys follow the analysis API's codes; every value is
	// rounded to the nearest whole unit.
	return domain.NutritionFacts{
		Calories: math.Round(nr.Calories),
		Protein:  quantity("PROCNT"),
		Carbs:    quantity("CHOCDF"),
		Fat:      quantity("FAT"),
		Fiber:    quantity("FIBTG"),
		Sugar:    quantity("SUGAR"),
		Sodium:   quantity("NA"),
	}, nil
}
