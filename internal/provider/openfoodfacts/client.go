// Package openfoodfacts drafts food items from the Open Food Facts product API.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	userAgent      = "tracker/1.0 (+https://github.com/reidsolon/tracker)"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// LookupBarcode fetches a product and returns it as an unsaved FoodItem. Only
// nutrients the product reports are set; sodium is converted from g to mg.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (model.FoodItem, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return model.FoodItem{}, fmt.Errorf("barcode is required")
	}
	body, err := c.get(ctx, fmt.Sprintf("/api/v2/product/%s.json", url.PathEscape(barcode)))
	if err != nil {
		return model.FoodItem{}, err
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.FoodItem{}, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return model.FoodItem{}, fmt.Errorf("no openfoodfacts product found for barcode %q", barcode)
	}
	item := toFoodItem(parsed.Product)
	item.Barcode = barcode
	return item, nil
}

func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]model.FoodItem, error) {
	if limit <= 0 {
		limit = 10
	}
	body, err := c.get(ctx, fmt.Sprintf("/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		url.QueryEscape(strings.TrimSpace(query)),
		limit,
	))
	if err != nil {
		return nil, err
	}
	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}
	out := make([]model.FoodItem, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		item := toFoodItem(p)
		item.Barcode = strings.TrimSpace(p.Code)
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no openfoodfacts product found for query %q", query)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func toFoodItem(p offProduct) model.FoodItem {
	size, unit := parseServing(p)
	n := p.Nutriments
	sodium := nutrientValue(n, "sodium")
	if sodium != nil {
		sodium = model.Float(*sodium * 1000)
	}
	return model.FoodItem{
		Name:        strings.TrimSpace(p.ProductName),
		Brand:       firstBrand(p.Brands),
		Category:    model.CategoryOther,
		ServingSize: strconv.FormatFloat(size, 'f', -1, 64),
		ServingUnit: unit,
		Nutrition: model.NutritionVector{
			Calories: model.Value(nutrientValue(n, "energy-kcal")),
			Protein:  nutrientValue(n, "proteins"),
			Carbs:    nutrientValue(n, "carbohydrates"),
			Fat:      nutrientValue(n, "fat"),
			Fiber:    nutrientValue(n, "fiber"),
			Sugar:    nutrientValue(n, "sugars"),
			Sodium:   sodium,
		},
		IsCustom: true,
	}
}

func firstBrand(brands string) string {
	first, _, _ := strings.Cut(brands, ",")
	return strings.TrimSpace(first)
}

// nutrientValue prefers the per-serving figure and falls back to per-100g.
func nutrientValue(n map[string]any, base string) *float64 {
	for _, key := range []string{base + "_serving", base + "_100g"} {
		if v, ok := parseFloatAny(n[key]); ok {
			return &v
		}
	}
	return nil
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var unitAliases = map[string]model.ServingUnit{
	"g":           model.UnitGram,
	"gr":          model.UnitGram,
	"grams":       model.UnitGram,
	"ml":          model.UnitMilliliter,
	"oz":          model.UnitOunce,
	"cup":         model.UnitCup,
	"cups":        model.UnitCup,
	"tbsp":        model.UnitTablespoon,
	"tsp":         model.UnitTeaspoon,
	"piece":       model.UnitPiece,
	"pieces":      model.UnitPiece,
	"slice":       model.UnitSlice,
	"slices":      model.UnitSlice,
	"tablespoon":  model.UnitTablespoon,
	"teaspoon":    model.UnitTeaspoon,
	"tablespoons": model.UnitTablespoon,
	"teaspoons":   model.UnitTeaspoon,
}

// parseServing reads the serving as (amount, unit), defaulting to 100 g when
// the product gives nothing usable.
func parseServing(p offProduct) (float64, model.ServingUnit) {
	if p.ServingQuantity > 0 {
		if unit, ok := unitAliases[strings.ToLower(strings.TrimSpace(p.ServingQuantityUnit))]; ok {
			return p.ServingQuantity, unit
		}
		if strings.TrimSpace(p.ServingQuantityUnit) == "" {
			return p.ServingQuantity, model.UnitGram
		}
	}
	if parts := strings.Fields(strings.TrimSpace(p.ServingSize)); len(parts) >= 2 {
		val, err := strconv.ParseFloat(strings.ReplaceAll(parts[0], ",", "."), 64)
		unit, ok := unitAliases[strings.ToLower(strings.Trim(parts[1], "()."))]
		if err == nil && val > 0 && ok {
			return val, unit
		}
	}
	return 100, model.UnitGram
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	Code                string         `json:"code"`
	ProductName         string         `json:"product_name"`
	Brands              string         `json:"brands"`
	ServingSize         string         `json:"serving_size"`
	ServingQuantity     float64        `json:"serving_quantity"`
	ServingQuantityUnit string         `json:"serving_quantity_unit"`
	Nutriments          map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
