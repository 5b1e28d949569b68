package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "foods": [
    {
      "fdcId": 171077,
      "description": "Chicken Breast",
      "dataType": "SR Legacy",
      "foodNutrients": [
        {"nutrientId": 1008, "value": 165},
        {"nutrientId": 1003, "value": 31},
        {"nutrientId": 1004, "value": 3.6},
        {"nutrientId": 1079, "value": 0.5}
      ]
    },
    {
      "fdcId": 2112398,
      "description": "PEANUT BUTTER",
      "brandOwner": "Acme Foods",
      "dataType": "Branded",
      "foodNutrients": [
        {"nutrientId": 1008, "value": 598},
        {"nutrientId": 1003, "value": 22.5},
        {"nutrientId": 1005, "value": 22.3},
        {"nutrientId": 1004, "value": 51.1}
      ]
    }
  ]
}`

func newStubUsda(t *testing.T, handler http.HandlerFunc) *UsdaService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("USDA_API_URL", srv.URL)
	t.Setenv("USDA_API_KEY", "test-key")
	return NewUsdaService()
}

func TestSearchFoodsNormalizesNutrients(t *testing.T) {
	svc := newStubUsda(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/foods/search", r.URL.Path)
		require.Equal(t, "chicken", r.URL.Query().Get("query"))
		require.Equal(t, "25", r.URL.Query().Get("pageSize"))
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	})

	items, err := svc.SearchFoods(context.Background(), "chicken")
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, "171077", first.ID)
	require.Equal(t, "Chicken Breast", first.Name)
	require.Equal(t, 165.0, first.Calories)
	require.Equal(t, 31.0, first.Protein)
	require.Equal(t, 0.0, first.Carbs, "missing nutrient defaults to zero")
	require.Equal(t, 3.6, first.Fats)
	require.Equal(t, "100g", first.Unit)
	require.Equal(t, "Generic", first.BrandOwner, "empty brandOwner falls back to Generic")
	require.Equal(t, "SR Legacy", first.Source)

	second := items[1]
	require.Equal(t, "Acme Foods", second.BrandOwner)
	require.Equal(t, 22.3, second.Carbs)
	require.Equal(t, "Branded", second.Source)
}

func TestSearchFoodsPreservesResponseOrder(t *testing.T) {
	svc := newStubUsda(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchFixture))
	})

	items, err := svc.SearchFoods(context.Background(), "anything")
	require.NoError(t, err)
	require.Equal(t, "Chicken Breast", items[0].Name)
	require.Equal(t, "PEANUT BUTTER", items[1].Name)
}

func TestSearchFoodsNonSuccessStatusIsLookupError(t *testing.T) {
	svc := newStubUsda(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := svc.SearchFoods(context.Background(), "chicken")
	var le *LookupError
	require.ErrorAs(t, err, &le)
}

func TestSearchFoodsTransportFailureIsLookupError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	t.Setenv("USDA_API_URL", srv.URL)
	t.Setenv("USDA_API_KEY", "test-key")

	_, err := NewUsdaService().SearchFoods(context.Background(), "chicken")
	var le *LookupError
	require.ErrorAs(t, err, &le)
}

func TestSearchFoodsMalformedJSONIsLookupError(t *testing.T) {
	svc := newStubUsda(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := svc.SearchFoods(context.Background(), "chicken")
	var le *LookupError
	require.ErrorAs(t, err, &le)
}
