package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reidsolon/tracker/internal/model"
)

func TestLookupBarcodeParsesOpenFoodFactsResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/12345678.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Yogurt Cup",
    "brands": "Brand Co, Parent Co",
    "serving_quantity": 170,
    "serving_quantity_unit": "g",
    "nutriments": {
      "energy-kcal_serving": 120,
      "proteins_serving": 10,
      "carbohydrates_serving": 15,
      "fat_100g": "2",
      "sodium_serving": 0.05
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	item, err := c.LookupBarcode(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if item.Name != "Yogurt Cup" || item.Brand != "Brand Co" || item.Barcode != "12345678" {
		t.Fatalf("unexpected identity: %+v", item)
	}
	if item.ServingSize != "170" || item.ServingUnit != model.UnitGram || item.Category != model.CategoryOther {
		t.Fatalf("unexpected serving: %+v", item)
	}
	if item.Nutrition.Calories != 120 || model.Value(item.Nutrition.Protein) != 10 || model.Value(item.Nutrition.Fat) != 2 {
		t.Fatalf("unexpected nutrition: %+v", item.Nutrition)
	}
	if item.Nutrition.Sodium == nil || *item.Nutrition.Sodium != 50 {
		t.Fatalf("expected sodium 50mg, got %v", item.Nutrition.Sodium)
	}
	if item.Nutrition.Fiber != nil || item.Nutrition.Sugar != nil {
		t.Fatalf("expected unreported nutrients to stay unset: %+v", item.Nutrition)
	}
}

func TestLookupBarcodeNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.LookupBarcode(context.Background(), "000"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestLookupBarcodeHTTPError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.LookupBarcode(context.Background(), "123"); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestSearchFoodsSkipsUnnamedProducts(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "greek yogurt" {
			t.Errorf("unexpected search terms %q", got)
		}
		_, _ = w.Write([]byte(`{"products": [
  {"code": "1", "product_name": "", "nutriments": {}},
  {"code": "2", "product_name": "Greek Yogurt", "serving_size": "1 cup (227 g)", "nutriments": {"energy-kcal_100g": 59}}
]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, err := c.SearchFoods(context.Background(), "greek yogurt", 5)
	if err != nil {
		t.Fatalf("search foods: %v", err)
	}
	if len(items) != 1 || items[0].Barcode != "2" {
		t.Fatalf("unexpected results: %+v", items)
	}
	if items[0].ServingSize != "1" || items[0].ServingUnit != model.UnitCup {
		t.Fatalf("unexpected serving: %s %s", items[0].ServingSize, items[0].ServingUnit)
	}
	if items[0].Nutrition.Calories != 59 {
		t.Fatalf("expected 59 calories, got %v", items[0].Nutrition.Calories)
	}
}
