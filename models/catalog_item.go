package models

// CatalogItem is one food search hit from the USDA catalog. Macro values are
// per 100 grams of the food. Items are read-only once fetched; they only
// become durable after being scaled into a LogEntry.
type CatalogItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fats       float64 `json:"fats"`
	Unit       string  `json:"unit"` // always "100g"
	BrandOwner string  `json:"brand_owner"`
	Source     string  `json:"source"` // USDA dataType, e.g. "Branded"
}
