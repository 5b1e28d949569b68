package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"backend/models"
)

const (
	defaultUsdaBaseURL = "https://api.nal.usda.gov/fdc/v1"
	searchPageSize     = 25
)

// FoodData Central nutrient numbers for the four tracked macros. Values are
// reported per 100 g of the food.
const (
	nutrientEnergy  = 1008
	nutrientProtein = 1003
	nutrientCarbs   = 1005
	nutrientFat     = 1004
)

// UsdaService wraps the USDA FoodData Central search API.
type UsdaService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewUsdaService initializes the client from the environment. USDA_API_URL is
// only meant to redirect the client at a stub server.
func NewUsdaService() *UsdaService {
	baseURL := os.Getenv("USDA_API_URL")
	if baseURL == "" {
		baseURL = defaultUsdaBaseURL
	}
	return &UsdaService{
		apiKey:  os.Getenv("USDA_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type usdaNutrient struct {
	NutrientID int     `json:"nutrientId"`
	Value      float64 `json:"value"`
}

type usdaFood struct {
	FdcID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	BrandOwner    string         `json:"brandOwner"`
	DataType      string         `json:"dataType"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type foodSearchResponse struct {
	Foods []usdaFood `json:"foods"`
}

// SearchFoods runs a free-text search and normalizes each hit into a
// CatalogItem, in response order. Any failure comes back as a LookupError.
func (s *UsdaService) SearchFoods(ctx context.Context, query string) ([]models.CatalogItem, error) {
	u := fmt.Sprintf("%s/foods/search?api_key=%s&query=%s&pageSize=%d",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(query), searchPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &LookupError{Err: fmt.Errorf("failed to create search request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LookupError{Err: fmt.Errorf("failed to call food search API: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LookupError{Err: fmt.Errorf("failed to read search response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &LookupError{Err: fmt.Errorf("food search API error %d: %s", resp.StatusCode, string(body))}
	}

	var sr foodSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, &LookupError{Err: fmt.Errorf("failed to parse search JSON: %w", err)}
	}

	results := make([]models.CatalogItem, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		brand := f.BrandOwner
		if brand == "" {
			brand = "Generic"
		}
		results = append(results, models.CatalogItem{
			ID:         strconv.FormatInt(f.FdcID, 10),
			Name:       f.Description,
			Calories:   nutrientValue(f.FoodNutrients, nutrientEnergy),
			Protein:    nutrientValue(f.FoodNutrients, nutrientProtein),
			Carbs:      nutrientValue(f.FoodNutrients, nutrientCarbs),
			Fats:       nutrientValue(f.FoodNutrients, nutrientFat),
			Unit:       "100g",
			BrandOwner: brand,
			Source:     f.DataType,
		})
	}
	return results, nil
}

// nutrientValue picks one nutrient out of the raw list, zero when absent.
func nutrientValue(nutrients []usdaNutrient, id int) float64 {
	for _, n := range nutrients {
		if n.NutrientID == id {
			return n.Value
		}
	}
	return 0
}
